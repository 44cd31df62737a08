package main

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"net/http"
)

// EmailAlerter hands the alert to an external mail bridge service. The bridge
// owns templating and SMTP delivery; we only send it the payload plus the
// resolved recipient list, signed so the bridge can authenticate us.
type EmailAlerter struct {
	bridgeURL  string
	hmacSecret string
}

func NewEmailAlerter(bridgeURL, hmacSecret string) *EmailAlerter {
	return &EmailAlerter{bridgeURL: bridgeURL, hmacSecret: hmacSecret}
}

func (e *EmailAlerter) Send(ctx context.Context, message AlertMessage) error {
	if e.bridgeURL == "" {
		return ErrAlerterNotConfigured
	}
	if len(message.Recipients) == 0 {
		return nil
	}

	requestBody, err := json.Marshal(message)
	if err != nil {
		return err
	}

	var signature string
	if e.hmacSecret != "" {
		signer := hmac.New(sha256.New, []byte(e.hmacSecret))
		signer.Write(requestBody)
		signature = fmt.Sprintf("%x", signer.Sum(nil))
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, e.bridgeURL, bytes.NewReader(requestBody))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("User-Agent", "kestrel-webhook/1.0")
	if signature != "" {
		request.Header.Set("X-Signature", signature)
	}

	response, err := http.DefaultClient.Do(request)
	if err != nil {
		return err
	}
	defer func() {
		if response.Body != nil {
			_ = response.Body.Close()
		}
	}()

	if response.StatusCode == http.StatusTooManyRequests {
		return ErrAlerterRateLimited
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("%w: received non-2xx response code %d", ErrAlerterDropped, response.StatusCode)
	}

	return nil
}
