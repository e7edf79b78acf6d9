package configs

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

var (
	JWTSecret string

	// Payment gateway
	PaymentProvider    string // "bitnob" (default) | "midtrans"
	BitnobAPIKey       string
	BitnobBaseURL      string
	MidtransServerKey  string
	MidtransProduction bool

	// Email (Resend)
	ResendAPIKey string
	MailFrom     string

	// URL publik backend (callback webhook) & frontend (redirect sukses/gagal)
	PublicBaseURL string
	FrontendURL   string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	JWTSecret = GetEnv("JWT_SECRET")

	PaymentProvider = strings.ToLower(GetEnv("PAYMENT_PROVIDER", "bitnob"))
	BitnobAPIKey = GetEnv("BITNOB_API_KEY")
	BitnobBaseURL = GetEnv("BITNOB_BASE_URL", "https://api.bitnob.com")
	MidtransServerKey = GetEnv("MIDTRANS_SERVER_KEY")
	MidtransProduction = GetEnv("MIDTRANS_ENV") == "production"

	ResendAPIKey = GetEnv("RESEND_API_KEY")
	MailFrom = GetEnv("MAIL_FROM", "FlowAid <onboarding@resend.dev>")

	PublicBaseURL = GetEnv("PUBLIC_BASE_URL")
	FrontendURL = GetEnv("FRONTEND_URL")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	} else {
		log.Println("✅ JWT_SECRET berhasil dimuat.")
	}

	// Kredensial gateway dicek sesuai provider aktif
	switch PaymentProvider {
	case "midtrans":
		if MidtransServerKey == "" {
			log.Println("❌ MIDTRANS_SERVER_KEY belum diset!")
		} else {
			log.Println("✅ MIDTRANS_SERVER_KEY berhasil dimuat.")
		}
	default:
		if BitnobAPIKey == "" {
			log.Println("❌ BITNOB_API_KEY belum diset!")
		} else {
			log.Println("✅ BITNOB_API_KEY berhasil dimuat.")
		}
	}

	if ResendAPIKey == "" {
		log.Println("⚠️ RESEND_API_KEY belum diset, email konfirmasi tidak akan terkirim")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
