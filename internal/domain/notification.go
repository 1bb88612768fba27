package domain

type Email struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type SMSMessage struct {
	PhoneNumber string `json:"phoneNumber"`
	Message     string `json:"message"`
}

type PushMessage struct {
	PhoneNumber string `json:"phoneNumber"`
	Message     string `json:"message"`
}
