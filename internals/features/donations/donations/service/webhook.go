package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"flowaid_backend/internals/features/donations/donations/model"
	schoolModel "flowaid_backend/internals/features/schools/model"
)

// WebhookEvent = hasil normalisasi payload callback gateway.
// Bitnob kirim {event, data:{...}}; midtrans kirim flat
// {transaction_status, order_id, transaction_id}. Dua-duanya dilebur ke
// bentuk yang sama supaya reconciler-nya satu.
type WebhookEvent struct {
	Provider  model.PaymentGatewayProvider
	Event     string
	Reference string // echo dari reference kita (donation id) ATAU reference milik gateway
	// Reference transaksi versi gateway, buat update transaction_hash
	TransactionHash string
	// Event id unik dari gateway kalau ada — dipakai dedupe delivery ulang
	ExternalID string
}

// ParseWebhookPayload menormalkan body webhook. Payload yang tidak bisa
// dikenali mengembalikan ok=false — di-ack tanpa kerja apa pun.
func ParseWebhookPayload(body map[string]interface{}) (WebhookEvent, bool) {
	if body == nil {
		return WebhookEvent{}, false
	}

	// Bentuk Bitnob: {event, data}
	if event, _ := body["event"].(string); event != "" {
		data, _ := body["data"].(map[string]interface{})
		if data == nil {
			return WebhookEvent{}, false
		}
		ev := WebhookEvent{
			Provider: model.GatewayProviderBitnob,
			Event:    event,
		}
		ev.Reference = lookupString(data, [][]string{{"reference"}, {"id"}})
		ev.TransactionHash = lookupString(data, [][]string{{"transactionHash"}, {"transaction_hash"}, {"id"}})
		ev.ExternalID = lookupString(data, [][]string{{"id"}})
		if ev.Reference == "" {
			return WebhookEvent{}, false
		}
		return ev, true
	}

	// Bentuk midtrans: flat, status di transaction_status
	if status, _ := body["transaction_status"].(string); status != "" {
		orderID, _ := body["order_id"].(string)
		if orderID == "" {
			return WebhookEvent{}, false
		}
		ev := WebhookEvent{
			Provider:        model.GatewayProviderMidtrans,
			Event:           status,
			Reference:       orderID,
			TransactionHash: lookupString(body, [][]string{{"transaction_id"}}),
			ExternalID:      lookupString(body, [][]string{{"transaction_id"}}),
		}
		return ev, true
	}

	return WebhookEvent{}, false
}

// MapEventStatus memetakan nama event gateway ke status donasi internal.
// Event yang tidak dikenali → ok=false, tanpa transisi.
func MapEventStatus(event string) (model.DonationStatus, bool) {
	switch event {
	// Bitnob
	case "checkout.payment.successful", "checkout.completed",
		"payment.successful", "payment.completed":
		return model.DonationStatusCompleted, true
	case "checkout.payment.failed", "checkout.failed", "payment.failed":
		return model.DonationStatusFailed, true
	case "checkout.payment.pending", "payment.pending":
		return model.DonationStatusProcessing, true
	case "checkout.expired":
		return model.DonationStatusExpired, true

	// midtrans transaction_status
	case "settlement", "capture":
		return model.DonationStatusCompleted, true
	case "deny", "cancel", "failure":
		return model.DonationStatusFailed, true
	case "pending":
		return model.DonationStatusProcessing, true
	case "expire":
		return model.DonationStatusExpired, true
	}
	return "", false
}

// transitionPlan = efek satu event ter-map terhadap donasi di status sekarang
type transitionPlan struct {
	Apply        bool
	CreditLedger bool
}

// planTransition adalah guard exactly-once dalam bentuk murni: donasi yang
// sudah completed tidak pernah disentuh lagi, dan ledger hanya di-kredit di
// transisi MENUJU completed. Dedupe delivery di insertEvent hanya pagar
// tambahan — keputusan akhirnya di sini.
func planTransition(current, next model.DonationStatus) transitionPlan {
	if current == model.DonationStatusCompleted {
		return transitionPlan{}
	}
	return transitionPlan{
		Apply:        true,
		CreditLedger: next == model.DonationStatusCompleted,
	}
}

// unmappedAuditStatus: event yang tidak dikenali dicatat sebagai skipped,
// bukan success — delivery-nya diterima tapi tidak menggerakkan donasi
func unmappedAuditStatus() model.GatewayEventStatus {
	return model.GatewayEventStatusSkipped
}

// WebhookReconciler menggerakkan status donasi dari event gateway,
// terlepas dari request/response cycle orchestrator.
type WebhookReconciler struct {
	DB *gorm.DB
}

func NewWebhookReconciler(db *gorm.DB) *WebhookReconciler {
	return &WebhookReconciler{DB: db}
}

// Reconcile memproses satu delivery webhook. Error apa pun di dalam hanya
// dicatat — caller HARUS tetap ack 200 supaya gateway tidak retry storm.
func (r *WebhookReconciler) Reconcile(ctx context.Context, body map[string]interface{}) error {
	ev, ok := ParseWebhookPayload(body)
	if !ok {
		log.Println("[INFO] Payload webhook tidak dikenali, di-ack tanpa diproses")
		return nil
	}

	newStatus, mapped := MapEventStatus(ev.Event)
	if !mapped {
		log.Printf("[INFO] Event webhook tidak dipetakan: %s", ev.Event)
		// Tetap catat delivery-nya buat audit
		r.recordEvent(ctx, r.DB, &ev, body, unmappedAuditStatus(), nil)
		return nil
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1) Catat delivery. Duplikat (provider, external id, event) =
		//    REDELIVERY event yang sama → ack tanpa kerja. Event berbeda
		//    dengan external id sama (pending lalu successful) BUKAN duplikat.
		eventRow, dup, err := r.insertEvent(ctx, tx, &ev, body)
		if err != nil {
			return err
		}
		if dup {
			log.Printf("[INFO] Delivery webhook duplikat (%s/%s/%s), di-skip", ev.Provider, ev.ExternalID, ev.Event)
			return nil
		}

		// 2) Cari donasi: by id dulu, lalu by transaction_hash (gateway yang
		//    echo reference miliknya sendiri).
		donation, err := findDonationByReference(ctx, tx, ev.Reference)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("[ERROR] Donasi untuk reference %s tidak ditemukan", ev.Reference)
				r.finishEvent(ctx, tx, eventRow, model.GatewayEventStatusFailed, fmt.Errorf("donation not found"))
				return nil
			}
			return err
		}
		eventRow.GatewayEventDonationID = &donation.DonationID

		// 3) Guard exactly-once: keputusan transisi + kredit ledger
		plan := planTransition(donation.DonationStatus, newStatus)
		if !plan.Apply {
			log.Printf("[INFO] Donasi %s sudah completed, webhook di-skip", donation.DonationID)
			r.finishEvent(ctx, tx, eventRow, model.GatewayEventStatusSuccess, nil)
			return nil
		}

		// 4) Transisi status (+ simpan transaction hash versi gateway)
		updates := map[string]interface{}{"donation_status": newStatus}
		if ev.TransactionHash != "" {
			updates["donation_transaction_hash"] = ev.TransactionHash
		}
		if err := tx.Model(&model.Donation{}).
			Where("donation_id = ?", donation.DonationID).
			Updates(updates).Error; err != nil {
			return err
		}

		// 5) Ledger sekolah di-kredit HANYA di transisi completed
		if plan.CreditLedger && donation.DonationSchoolID != nil {
			if err := tx.Model(&schoolModel.School{}).
				Where("school_id = ?", *donation.DonationSchoolID).
				Update("school_total_received",
					gorm.Expr("school_total_received + ?", donation.DonationAmount)).Error; err != nil {
				return err
			}
			log.Printf("[INFO] Ledger sekolah %s +%s (donasi %s)",
				donation.DonationSchoolID, donation.DonationAmount, donation.DonationID)
		}

		r.finishEvent(ctx, tx, eventRow, model.GatewayEventStatusSuccess, nil)
		log.Printf("[INFO] Donasi %s → %s", donation.DonationID, newStatus)
		return nil
	})
}

// findDonationByReference: lookup by donation id, fallback by transaction_hash
func findDonationByReference(ctx context.Context, tx *gorm.DB, reference string) (*model.Donation, error) {
	var donation model.Donation

	if id, err := uuid.Parse(reference); err == nil {
		err := tx.WithContext(ctx).Where("donation_id = ?", id).First(&donation).Error
		if err == nil {
			return &donation, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	err := tx.WithContext(ctx).Where("donation_transaction_hash = ?", reference).First(&donation).Error
	if err != nil {
		return nil, err
	}
	return &donation, nil
}

// insertEvent menyimpan baris audit (raw payload masuk jsonb);
// duplikat unique index dilaporkan lewat dup
func (r *WebhookReconciler) insertEvent(ctx context.Context, tx *gorm.DB, ev *WebhookEvent, body map[string]interface{}) (*model.PaymentGatewayEvent, bool, error) {
	payload, _ := sonic.Marshal(body)

	row := &model.PaymentGatewayEvent{
		GatewayEventProvider:   ev.Provider,
		GatewayEventType:       ev.Event,
		GatewayEventPayload:    datatypes.JSON(payload),
		GatewayEventStatus:     model.GatewayEventStatusReceived,
		GatewayEventReceivedAt: time.Now(),
	}
	if ev.ExternalID != "" {
		row.GatewayEventExternalID = &ev.ExternalID
	}

	if err := tx.WithContext(ctx).Create(row).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, true, nil
		}
		return nil, false, err
	}
	return row, false, nil
}

func (r *WebhookReconciler) finishEvent(ctx context.Context, tx *gorm.DB, row *model.PaymentGatewayEvent, status model.GatewayEventStatus, procErr error) {
	if row == nil {
		return
	}
	now := time.Now()
	updates := map[string]interface{}{
		"gateway_event_status":       status,
		"gateway_event_processed_at": &now,
	}
	if procErr != nil {
		msg := procErr.Error()
		updates["gateway_event_error"] = &msg
	}
	if row.GatewayEventDonationID != nil {
		updates["gateway_event_donation_id"] = row.GatewayEventDonationID
	}
	if err := tx.WithContext(ctx).Model(&model.PaymentGatewayEvent{}).
		Where("gateway_event_id = ?", row.GatewayEventID).
		Updates(updates).Error; err != nil {
		log.Println("[ERROR] Gagal update status gateway event:", err)
	}
}

// recordEvent: jalur non-transaksional untuk event yang tidak dipetakan
func (r *WebhookReconciler) recordEvent(ctx context.Context, db *gorm.DB, ev *WebhookEvent, body map[string]interface{}, status model.GatewayEventStatus, procErr error) {
	row, dup, err := r.insertEvent(ctx, db, ev, body)
	if err != nil || dup {
		return
	}
	r.finishEvent(ctx, db, row, status, procErr)
}

// 23505 = unique_violation Postgres. Dicek untuk pgx maupun lib/pq,
// tergantung driver yang membungkus.
func isUniqueViolation(err error) bool {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code == "23505"
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == "23505"
	}
	return false
}
