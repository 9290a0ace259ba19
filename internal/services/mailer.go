package services

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/wneessen/go-mail"

	"velora_back_end/internal/models"
)

// Mailer envoie les confirmations de commande. Sans configuration SMTP,
// NewMailerFromEnv renvoie nil et les envois sont silencieusement ignorés.
type Mailer struct {
	client *mail.Client
	from   string
}

func NewMailerFromEnv() *Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		log.Println("⚠️ SMTP non configuré — emails de confirmation désactivés")
		return nil
	}

	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(os.Getenv("SMTP_USER")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
	)
	if err != nil {
		log.Println("⚠️ Erreur configuration SMTP:", err)
		return nil
	}

	log.Println("✅ Mailer SMTP configuré :", host)
	return &Mailer{client: client, from: os.Getenv("SMTP_FROM")}
}

// SendOrderConfirmation envoie le récapitulatif d'une commande. Best
// effort : l'échec est loggé, la commande reste valide.
func (m *Mailer) SendOrderConfirmation(to string, order *models.Order) {
	if m == nil || to == "" {
		return
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		log.Println("⚠️ Adresse expéditeur invalide:", err)
		return
	}
	if err := msg.To(to); err != nil {
		log.Println("⚠️ Adresse destinataire invalide:", err)
		return
	}

	msg.Subject(fmt.Sprintf("Confirmation de votre commande %s", order.ID))

	body := fmt.Sprintf("Merci pour votre commande !\n\nCommande : %s\n", order.ID)
	for _, item := range order.Items {
		body += fmt.Sprintf("- %s x%d — %.2f €\n", item.Name, item.Qty, item.Price)
	}
	body += fmt.Sprintf("\nLivraison : %.2f €\nTotal : %.2f €\n", order.ShippingPrice, order.TotalPrice)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := m.client.DialAndSend(msg); err != nil {
		log.Println("⚠️ Échec envoi email de confirmation:", err)
	}
}
