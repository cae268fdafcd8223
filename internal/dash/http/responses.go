package http

import (
	"github.com/lakemont/crmdash/internal/dash/domain"
	"github.com/lakemont/crmdash/internal/dash/service"
	"github.com/lakemont/crmdash/pkg/dashsdk"
)

func userInfo(u domain.User) dashsdk.UserInfo {
	return dashsdk.UserInfo{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func authResponse(r *service.AuthResult) dashsdk.AuthResponse {
	return dashsdk.AuthResponse{
		ID:        r.User.ID,
		Email:     r.User.Email,
		FirstName: r.User.FirstName,
		LastName:  r.User.LastName,
		Token:     r.AccessToken,
	}
}

func sdkRecord(rec domain.Record) dashsdk.Record {
	return dashsdk.Record{
		ID:                rec.ID,
		Name:              rec.Name,
		Phone:             rec.Phone,
		Website:           rec.Website,
		Industry:          rec.Industry,
		BillingStreet:     rec.BillingStreet,
		BillingCity:       rec.BillingCity,
		BillingState:      rec.BillingState,
		BillingPostalCode: rec.BillingPostalCode,
		BillingCountry:    rec.BillingCountry,
	}
}
