package dto

import "net/url"

type LoginRequest struct {
	Username string
	Password string
}

func ParseLoginForm(form url.Values) LoginRequest {
	return LoginRequest{Username: form.Get("username"), Password: form.Get("password")}
}
