package model

type AboutProfile struct {
	Name  string `json:"name"`
	Bio   string `json:"bio"`
	Image string `json:"image"`
}
