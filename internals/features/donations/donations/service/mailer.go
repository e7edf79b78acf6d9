package service

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/bytedance/sonic"

	"flowaid_backend/internals/features/donations/donations/dto"
)

// ConfirmationMailer kirim email tanda terima donasi via Resend.
// Dipanggil fire-and-forget setelah inisiasi pembayaran sukses —
// gagal kirim cuma dicatat, tidak pernah menggagalkan donasi.
type ConfirmationMailer struct {
	apiKey   string
	from     string
	endpoint string
	http     *http.Client
}

func NewConfirmationMailer(apiKey, from string) *ConfirmationMailer {
	return &ConfirmationMailer{
		apiKey:   apiKey,
		from:     from,
		endpoint: "https://api.resend.com/emails",
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

type resendPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (m *ConfirmationMailer) Send(ctx context.Context, req dto.DonationConfirmationRequest) error {
	if m.apiKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	body, err := sonic.Marshal(resendPayload{
		From:    m.from,
		To:      []string{req.Email},
		Subject: "Thank you for your donation! 💝",
		HTML:    BuildConfirmationHTML(req),
	})
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Authorization", "Bearer "+m.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := m.http.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("resend API %d: %s", resp.StatusCode, string(raw))
	}
	return nil
}

// SendAsync: dispatch di goroutine sendiri, response donasi tidak menunggu
func (m *ConfirmationMailer) SendAsync(req dto.DonationConfirmationRequest) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		if err := m.Send(ctx, req); err != nil {
			log.Println("[ERROR] Gagal kirim email konfirmasi:", err)
			return
		}
		log.Println("[INFO] Email konfirmasi terkirim ke:", req.Email)
	}()
}

// BuildConfirmationHTML menyusun tanda terima yang dibaca donatur.
// Semua field teks datang dari input caller (endpoint konfirmasi menerima
// body bebas) — wajib di-escape sebelum masuk HTML.
func BuildConfirmationHTML(req dto.DonationConfirmationRequest) string {
	displayName := req.DonorName
	if displayName == "" {
		displayName = "Generous Donor"
	}
	school := req.SchoolName
	if school == "" {
		school = "a school in need"
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1>Thank You, %s! 💝</h1>
  <p>We're thrilled to confirm your donation to <strong>%s</strong>. Your support helps provide essential hygiene products to girls in need.</p>
  <h3>Donation Details</h3>
  <table style="width: 100%%;">
    <tr><td>Product:</td><td style="text-align: right;">%s</td></tr>
    <tr><td>Quantity:</td><td style="text-align: right;">%d pack(s)</td></tr>
    <tr><td>Amount:</td><td style="text-align: right;">$%.2f</td></tr>
    <tr><td>Reference:</td><td style="text-align: right;">%s</td></tr>
  </table>
  <p><strong>Your Impact:</strong> Every donation helps keep girls in school by providing essential hygiene products.</p>
  <p style="color: #9ca3af; font-size: 12px;">© %d FlowAid. Empowering girls through education.</p>
</body>
</html>`,
		html.EscapeString(displayName), html.EscapeString(school), html.EscapeString(req.ProductName),
		req.Quantity, req.Amount, html.EscapeString(req.DonationID), time.Now().Year())
}
