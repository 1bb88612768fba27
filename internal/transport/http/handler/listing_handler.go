package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"property-alerts/internal/domain"
	"property-alerts/internal/service"
	"property-alerts/internal/transport/http/ez"
)

type ListingHandler struct {
	publish *service.ListingService
	search  *service.SearchService
}

func NewListingHandler(p *service.ListingService, s *service.SearchService) *ListingHandler {
	return &ListingHandler{publish: p, search: s}
}

type publishReq struct {
	ID            int    `json:"id"`
	Description   string `json:"description"`
	PostalCode    string `json:"postalCode"`
	Price         int    `json:"price"`
	NumberOfRooms int    `json:"numberOfRooms"`
	SquareMeters  int    `json:"squareMeters"`
	OwnerID       int    `json:"ownerId"`
}

type publishResp struct {
	Listing      domain.Listing `json:"listing"`
	Evaluated    int            `json:"evaluated"`
	Matched      int            `json:"matched"`
	Sent         int            `json:"sent"`
	NotifyErrors string         `json:"notifyErrors,omitempty"`
}

type searchResp struct {
	Total int              `json:"total"`
	Items []domain.Listing `json:"items"`
}

func (h *ListingHandler) MountAPI(api *gin.RouterGroup) {
	e := ez.New(api)

	// --- POST /api/v1/listings  发布房源并触发告警 ---
	ez.Register(e, ez.Action[publishReq, publishResp]{
		Method: http.MethodPost,
		Path:   "/listings",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *publishReq) (publishResp, error) {
			res, err := h.publish.Publish(c.Request.Context(), service.PublishListingCommand(*in))
			if err != nil {
				return publishResp{}, err
			}
			out := publishResp{Listing: res.Listing, Evaluated: res.Evaluated, Matched: res.Matched, Sent: res.Sent}
			if res.DispatchErr != nil {
				out.NotifyErrors = res.DispatchErr.Error()
			}
			return out, nil
		},
	})

	// --- GET /api/v1/listings/search ---
	ez.Register(e, ez.Action[service.SearchQuery, searchResp]{
		Method: http.MethodGet,
		Path:   "/listings/search",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *service.SearchQuery) (searchResp, error) {
			items, err := h.search.Search(c.Request.Context(), *in)
			if err != nil {
				return searchResp{}, err
			}
			return searchResp{Total: len(items), Items: items}, nil
		},
	})
}

func (h *ListingHandler) Priority() int { return 10 }
