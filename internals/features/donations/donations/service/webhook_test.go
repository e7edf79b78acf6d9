package service

import (
	"testing"

	"flowaid_backend/internals/features/donations/donations/model"
)

func TestMapEventStatus(t *testing.T) {
	cases := []struct {
		event  string
		status model.DonationStatus
		mapped bool
	}{
		// Bitnob
		{"checkout.payment.successful", model.DonationStatusCompleted, true},
		{"checkout.completed", model.DonationStatusCompleted, true},
		{"payment.successful", model.DonationStatusCompleted, true},
		{"payment.completed", model.DonationStatusCompleted, true},
		{"checkout.payment.failed", model.DonationStatusFailed, true},
		{"checkout.failed", model.DonationStatusFailed, true},
		{"payment.failed", model.DonationStatusFailed, true},
		{"checkout.payment.pending", model.DonationStatusProcessing, true},
		{"payment.pending", model.DonationStatusProcessing, true},
		{"checkout.expired", model.DonationStatusExpired, true},
		// midtrans
		{"settlement", model.DonationStatusCompleted, true},
		{"capture", model.DonationStatusCompleted, true},
		{"deny", model.DonationStatusFailed, true},
		{"cancel", model.DonationStatusFailed, true},
		{"pending", model.DonationStatusProcessing, true},
		{"expire", model.DonationStatusExpired, true},
		// tidak dikenali
		{"subscription.renewed", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		status, mapped := MapEventStatus(tc.event)
		if mapped != tc.mapped {
			t.Errorf("event %q: expected mapped=%v, got %v", tc.event, tc.mapped, mapped)
			continue
		}
		if mapped && status != tc.status {
			t.Errorf("event %q: expected status %s, got %s", tc.event, tc.status, status)
		}
	}
}

func TestUnmappedAuditStatus(t *testing.T) {
	t.Run("Given an unrecognized event When audited Then marked skipped not success", func(t *testing.T) {
		got := unmappedAuditStatus()
		if got != model.GatewayEventStatusSkipped {
			t.Errorf("expected skipped, got %s", got)
		}
		if got == model.GatewayEventStatusSuccess {
			t.Error("an unmapped delivery must not be audited as success")
		}
	})
}

func TestPlanTransition(t *testing.T) {
	cases := []struct {
		name    string
		current model.DonationStatus
		next    model.DonationStatus
		apply   bool
		credit  bool
	}{
		{"pending ke processing", model.DonationStatusPending, model.DonationStatusProcessing, true, false},
		{"pending ke completed", model.DonationStatusPending, model.DonationStatusCompleted, true, true},
		{"processing ke completed", model.DonationStatusProcessing, model.DonationStatusCompleted, true, true},
		{"processing ke failed", model.DonationStatusProcessing, model.DonationStatusFailed, true, false},
		{"completed ke completed", model.DonationStatusCompleted, model.DonationStatusCompleted, false, false},
		{"completed ke failed", model.DonationStatusCompleted, model.DonationStatusFailed, false, false},
		{"completed ke processing", model.DonationStatusCompleted, model.DonationStatusProcessing, false, false},
	}

	for _, tc := range cases {
		plan := planTransition(tc.current, tc.next)
		if plan.Apply != tc.apply {
			t.Errorf("%s: expected apply=%v, got %v", tc.name, tc.apply, plan.Apply)
		}
		if plan.CreditLedger != tc.credit {
			t.Errorf("%s: expected credit=%v, got %v", tc.name, tc.credit, plan.CreditLedger)
		}
	}
}

// Gateway memakai SATU payment id untuk semua notifikasi sebuah pembayaran:
// notifikasi pending dan successful datang dengan data.id yang sama. Urutan
// pending → successful → successful (redelivery) harus berakhir completed
// dengan tepat satu kredit ledger.
func TestWebhookDeliverySequence(t *testing.T) {
	donationRef := "d7f3a1e2-1111-4222-8333-944445555666"
	pendingBody := map[string]interface{}{
		"event": "checkout.payment.pending",
		"data": map[string]interface{}{
			"reference": donationRef,
			"id":        "checkout_abc",
		},
	}
	successBody := map[string]interface{}{
		"event": "checkout.payment.successful",
		"data": map[string]interface{}{
			"reference": donationRef,
			"id":        "checkout_abc",
		},
	}

	t.Run("Given pending and successful sharing one payment id When parsed Then delivery identities differ", func(t *testing.T) {
		pending, ok := ParseWebhookPayload(pendingBody)
		if !ok {
			t.Fatal("expected pending payload to parse")
		}
		success, ok := ParseWebhookPayload(successBody)
		if !ok {
			t.Fatal("expected successful payload to parse")
		}

		if pending.ExternalID != success.ExternalID {
			t.Fatalf("fixture broken: gateway reuses one payment id, got %q vs %q", pending.ExternalID, success.ExternalID)
		}
		// Identitas delivery = (provider, external id, event) — event yang
		// berbeda dengan external id sama tidak boleh saling memblokir
		if pending.Provider == success.Provider && pending.ExternalID == success.ExternalID && pending.Event == success.Event {
			t.Error("pending and successful must have distinct delivery identities")
		}

		redelivery, _ := ParseWebhookPayload(successBody)
		if redelivery.Provider != success.Provider || redelivery.ExternalID != success.ExternalID || redelivery.Event != success.Event {
			t.Error("an identical redelivery must share the delivery identity")
		}
	})

	t.Run("Given the full sequence When applied in order Then ledger credited exactly once and donation completes", func(t *testing.T) {
		status := model.DonationStatusPending
		credits := 0

		for _, body := range []map[string]interface{}{pendingBody, successBody, successBody} {
			ev, ok := ParseWebhookPayload(body)
			if !ok {
				t.Fatal("expected payload to parse")
			}
			next, mapped := MapEventStatus(ev.Event)
			if !mapped {
				t.Fatalf("expected event %q to map", ev.Event)
			}
			plan := planTransition(status, next)
			if !plan.Apply {
				continue
			}
			status = next
			if plan.CreditLedger {
				credits++
			}
		}

		if status != model.DonationStatusCompleted {
			t.Errorf("expected donation to end completed, got %s", status)
		}
		if credits != 1 {
			t.Errorf("expected exactly one ledger credit, got %d", credits)
		}
	})
}

func TestParseWebhookPayload(t *testing.T) {
	t.Run("Given a Bitnob payload When parsed Then event and reference extracted", func(t *testing.T) {
		body := map[string]interface{}{
			"event": "payment.completed",
			"data": map[string]interface{}{
				"reference":       "d7f3a1e2-1111-4222-8333-944445555666",
				"transactionHash": "btn_tx_99",
				"id":              "evt_123",
			},
		}

		ev, ok := ParseWebhookPayload(body)

		if !ok {
			t.Fatal("expected payload to parse")
		}
		if ev.Provider != model.GatewayProviderBitnob {
			t.Errorf("expected bitnob provider, got %s", ev.Provider)
		}
		if ev.Event != "payment.completed" {
			t.Errorf("unexpected event: %s", ev.Event)
		}
		if ev.Reference != "d7f3a1e2-1111-4222-8333-944445555666" {
			t.Errorf("unexpected reference: %s", ev.Reference)
		}
		if ev.TransactionHash != "btn_tx_99" {
			t.Errorf("unexpected transaction hash: %s", ev.TransactionHash)
		}
		if ev.ExternalID != "evt_123" {
			t.Errorf("unexpected external id: %s", ev.ExternalID)
		}
	})

	t.Run("Given a Bitnob payload without reference When parsed Then id is the fallback", func(t *testing.T) {
		body := map[string]interface{}{
			"event": "payment.completed",
			"data": map[string]interface{}{
				"id": "btn_tx_42",
			},
		}

		ev, ok := ParseWebhookPayload(body)

		if !ok {
			t.Fatal("expected payload to parse")
		}
		if ev.Reference != "btn_tx_42" {
			t.Errorf("expected id fallback as reference, got %s", ev.Reference)
		}
	})

	t.Run("Given a midtrans payload When parsed Then folded into the same shape", func(t *testing.T) {
		body := map[string]interface{}{
			"transaction_status": "settlement",
			"order_id":           "a1b2c3d4-5555-4666-8777-988889999000",
			"transaction_id":     "mid_tx_7",
		}

		ev, ok := ParseWebhookPayload(body)

		if !ok {
			t.Fatal("expected payload to parse")
		}
		if ev.Provider != model.GatewayProviderMidtrans {
			t.Errorf("expected midtrans provider, got %s", ev.Provider)
		}
		if ev.Event != "settlement" {
			t.Errorf("unexpected event: %s", ev.Event)
		}
		if ev.Reference != "a1b2c3d4-5555-4666-8777-988889999000" {
			t.Errorf("unexpected reference: %s", ev.Reference)
		}
		if ev.TransactionHash != "mid_tx_7" {
			t.Errorf("unexpected transaction hash: %s", ev.TransactionHash)
		}
	})

	t.Run("Given a payload without event or data When parsed Then not ok", func(t *testing.T) {
		for name, body := range map[string]map[string]interface{}{
			"nil body":          nil,
			"empty":             {},
			"event tanpa data":  {"event": "payment.completed"},
			"data tanpa event":  {"data": map[string]interface{}{"reference": "x"}},
			"reference kosong":  {"event": "payment.completed", "data": map[string]interface{}{}},
			"midtrans tanpa id": {"transaction_status": "settlement"},
		} {
			if _, ok := ParseWebhookPayload(body); ok {
				t.Errorf("%s: expected parse to fail", name)
			}
		}
	})
}
