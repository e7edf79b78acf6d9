package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"

	"flowaid_backend/internals/features/donations/donations/dto"
)

func confirmationFixture() dto.DonationConfirmationRequest {
	return dto.DonationConfirmationRequest{
		Email:       "donor@example.com",
		DonorName:   "Ayu",
		ProductName: "Hygiene Kit",
		Amount:      25.50,
		Quantity:    2,
		SchoolName:  "SDN 01 Menteng",
		DonationID:  "d3b07384-d9a0-4c1a-8f3e-5a2b1c4d6e7f",
	}
}

func TestConfirmationMailerSend(t *testing.T) {
	t.Run("Given a configured mailer When sending Then Resend receives an authorized payload", func(t *testing.T) {
		var gotAuth string
		var gotBody map[string]interface{}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			raw, _ := io.ReadAll(r.Body)
			_ = sonic.Unmarshal(raw, &gotBody)
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"id":"email_123"}`))
		}))
		defer server.Close()

		mailer := NewConfirmationMailer("re_test_key", "FlowAid <noreply@flowaid.org>")
		mailer.endpoint = server.URL

		if err := mailer.Send(context.Background(), confirmationFixture()); err != nil {
			t.Fatalf("expected send to succeed, got %v", err)
		}

		if gotAuth != "Bearer re_test_key" {
			t.Errorf("expected bearer auth, got %q", gotAuth)
		}
		if gotBody["from"] != "FlowAid <noreply@flowaid.org>" {
			t.Errorf("unexpected from: %v", gotBody["from"])
		}
		to, ok := gotBody["to"].([]interface{})
		if !ok || len(to) != 1 || to[0] != "donor@example.com" {
			t.Errorf("unexpected to: %v", gotBody["to"])
		}
		html, _ := gotBody["html"].(string)
		if !strings.Contains(html, "Hygiene Kit") {
			t.Errorf("expected html to carry the product name, got %q", html)
		}
	})

	t.Run("Given the API rejects the request When sending Then the error surfaces", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"message":"invalid from address"}`))
		}))
		defer server.Close()

		mailer := NewConfirmationMailer("re_test_key", "bad-from")
		mailer.endpoint = server.URL

		err := mailer.Send(context.Background(), confirmationFixture())
		if err == nil {
			t.Fatal("expected an error for non-2xx response")
		}
		if !strings.Contains(err.Error(), "422") {
			t.Errorf("expected status code in error, got %v", err)
		}
	})

	t.Run("Given no API key When sending Then it fails before any request", func(t *testing.T) {
		mailer := NewConfirmationMailer("", "FlowAid <noreply@flowaid.org>")

		if err := mailer.Send(context.Background(), confirmationFixture()); err == nil {
			t.Fatal("expected error when RESEND_API_KEY is empty")
		}
	})
}

func TestBuildConfirmationHTML(t *testing.T) {
	t.Run("Given a full request When built Then all details appear", func(t *testing.T) {
		html := BuildConfirmationHTML(confirmationFixture())

		for _, want := range []string{"Ayu", "SDN 01 Menteng", "Hygiene Kit", "2 pack(s)", "$25.50", "d3b07384-d9a0-4c1a-8f3e-5a2b1c4d6e7f"} {
			if !strings.Contains(html, want) {
				t.Errorf("expected html to contain %q", want)
			}
		}
	})

	t.Run("Given markup in caller-supplied fields When built Then it is escaped", func(t *testing.T) {
		req := confirmationFixture()
		req.DonorName = `<script>alert("x")</script>`
		req.SchoolName = `<img src=x onerror=alert(1)>`
		req.ProductName = "Kit & <b>Co</b>"

		html := BuildConfirmationHTML(req)

		if strings.Contains(html, "<script>") || strings.Contains(html, "<img src=x") || strings.Contains(html, "<b>Co</b>") {
			t.Errorf("expected caller markup to be escaped, got %q", html)
		}
		if !strings.Contains(html, "&lt;script&gt;") {
			t.Error("expected escaped donor name in output")
		}
		if !strings.Contains(html, "Kit &amp; &lt;b&gt;Co&lt;/b&gt;") {
			t.Error("expected escaped product name in output")
		}
	})

	t.Run("Given missing donor and school names When built Then fallbacks are used", func(t *testing.T) {
		req := confirmationFixture()
		req.DonorName = ""
		req.SchoolName = ""

		html := BuildConfirmationHTML(req)

		if !strings.Contains(html, "Generous Donor") {
			t.Error("expected fallback donor name")
		}
		if !strings.Contains(html, "a school in need") {
			t.Error("expected fallback school name")
		}
	})
}
