package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/*
  payment_gateway_events = LOG WEBHOOK / CALLBACK PAYMENT GATEWAY
  - Bisa banyak row per 1 donasi (tiap delivery).
  - Nyimpen raw payload + status processing, buat debug / replay.
  - unique (provider, external_id, event_type) → REDELIVERY event yang sama
    ketahuan duplikat di level insert. external_id milik gateway itu scoped
    per PEMBAYARAN (id yang sama muncul di notifikasi pending maupun
    successful), jadi nama event HARUS ikut di key — kalau tidak, notifikasi
    successful dianggap duplikat dari pending dan donasi nyangkut di
    processing.
*/

type PaymentGatewayEvent struct {
	GatewayEventID uuid.UUID `gorm:"column:gateway_event_id;type:uuid;default:gen_random_uuid();primaryKey" json:"gateway_event_id"`

	GatewayEventDonationID *uuid.UUID `gorm:"column:gateway_event_donation_id;type:uuid" json:"gateway_event_donation_id,omitempty"`

	GatewayEventProvider   PaymentGatewayProvider `gorm:"column:gateway_event_provider;type:varchar(20);not null;uniqueIndex:ux_gateway_events_delivery,priority:1" json:"gateway_event_provider"`
	GatewayEventType       string                 `gorm:"column:gateway_event_type;type:varchar(100);not null;uniqueIndex:ux_gateway_events_delivery,priority:3" json:"gateway_event_type"`
	GatewayEventExternalID *string                `gorm:"column:gateway_event_external_id;type:varchar(128);uniqueIndex:ux_gateway_events_delivery,priority:2" json:"gateway_event_external_id,omitempty"`

	GatewayEventPayload datatypes.JSON `gorm:"column:gateway_event_payload;type:jsonb" json:"gateway_event_payload"`

	GatewayEventStatus GatewayEventStatus `gorm:"column:gateway_event_status;type:varchar(20);not null;default:'received'" json:"gateway_event_status"`
	GatewayEventError  *string            `gorm:"column:gateway_event_error" json:"gateway_event_error,omitempty"`

	GatewayEventReceivedAt  time.Time  `gorm:"column:gateway_event_received_at;not null;default:now()" json:"gateway_event_received_at"`
	GatewayEventProcessedAt *time.Time `gorm:"column:gateway_event_processed_at" json:"gateway_event_processed_at,omitempty"`
}

func (PaymentGatewayEvent) TableName() string {
	return "payment_gateway_events"
}
