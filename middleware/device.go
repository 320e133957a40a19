// Copyright (c) 2025 Gymkompaniet AB.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"net/http"

	"github.com/gymkompaniet/code-hunt/auth"
	"github.com/gymkompaniet/code-hunt/cliparse"
)

const (
	// DeviceCookieName is the long-lived cookie carrying the device id.
	DeviceCookieName = "device_id"
	// DeviceHeaderName lets non-browser clients supply a device id directly.
	DeviceHeaderName = "X-Device-ID"
)

type contextKey int

const deviceIDKey contextKey = iota

// WithDeviceID resolves the requester's device id and threads it through
// the request context. Resolution order: validated header, validated
// cookie, freshly minted id. A new or changed id re-issues the cookie.
func WithDeviceID(cfg cliparse.Config, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		headerID := auth.NormalizeDeviceID(r.Header.Get(DeviceHeaderName))

		cookieID := ""
		if c, err := r.Cookie(DeviceCookieName); err == nil {
			cookieID = auth.NormalizeDeviceID(c.Value)
		}

		var deviceID string
		setCookie := false
		switch {
		case headerID != "":
			deviceID = headerID
			setCookie = cookieID != headerID
		case cookieID != "":
			deviceID = cookieID
		default:
			deviceID = auth.GenerateDeviceID()
			setCookie = true
		}

		if setCookie {
			http.SetCookie(w, &http.Cookie{
				Name:     DeviceCookieName,
				Value:    deviceID,
				Path:     "/",
				MaxAge:   cfg.DeviceCookieMaxAge,
				HttpOnly: true,
				Secure:   cfg.CookieSecure,
				SameSite: cfg.CookieSameSite,
			})
		}

		next(w, r.WithContext(context.WithValue(r.Context(), deviceIDKey, deviceID)))
	}
}

// DeviceID returns the device id resolved by WithDeviceID, or "" when
// the middleware did not run.
func DeviceID(r *http.Request) string {
	id, _ := r.Context().Value(deviceIDKey).(string)
	return id
}
