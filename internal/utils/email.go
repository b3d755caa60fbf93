package utils

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/wneessen/go-mail"

	"shoplite/internal/models"
)

// ErrSMTPDisabled signale que l'envoi d'e-mails n'est pas configuré.
var ErrSMTPDisabled = errors.New("SMTP non configuré")

// SendOrderConfirmation envoie l'e-mail de confirmation de commande.
// Ne fait rien si SMTP_HOST n'est pas défini (serveur mock sans e-mail).
func SendOrderConfirmation(to string, order models.Order) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return ErrSMTPDisabled
	}

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@shoplite.local"
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(fmt.Sprintf("Confirmation de commande #%s", order.ID))
	msg.SetBodyString(mail.TypeTextHTML, orderConfirmationHTML(order))

	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	return client.DialAndSend(msg)
}

// orderConfirmationHTML génère le corps HTML de la confirmation.
func orderConfirmationHTML(order models.Order) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>%.2f€</td>
				<td>%.2f€</td>
			</tr>`, item.ProductName, item.Quantity, item.Price, item.Price*float64(item.Quantity))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body>
	<h2>Merci pour votre commande !</h2>
	<p>Commande <strong>#%s</strong> — statut : %s</p>
	<table border="1" cellpadding="6" cellspacing="0">
		<tr><th>Produit</th><th>Quantité</th><th>Prix</th><th>Sous-total</th></tr>
		%s
	</table>
	<p><strong>Total : %.2f€</strong></p>
	<p>Livraison : %s, %s, %s %s, %s</p>
</body>
</html>`,
		order.ID, order.Status, itemsHTML, order.Total,
		order.ShippingAddress.Street, order.ShippingAddress.City,
		order.ShippingAddress.State, order.ShippingAddress.ZipCode,
		order.ShippingAddress.Country)
}
