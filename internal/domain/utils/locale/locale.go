package locale

import "fmt"

// Fallback is used when a user's language has no catalog.
const Fallback = "en"

type catalog struct {
	reminderSubject string
	reminderBody    string
	welcomeSubject  string
	welcomeBody     string
	offsetLabels    map[string]string
}

var catalogs = map[string]catalog{
	"en": {
		reminderSubject: "Upcoming Event: %s",
		reminderBody: `<h2>Event Reminder</h2>
<p>Hello %s,</p>
<p>The event "%s" is starting in %s!</p>
<p><strong>Details:</strong></p>
<ul>
<li>Date: %s</li>
<li>Location: %s</li>
<li>Description: %s</li>
</ul>
<p>Don't forget to check the event page for any updates!</p>`,
		welcomeSubject: "Welcome to Event Locator!",
		welcomeBody: `<h2>Welcome to Event Locator!</h2>
<p>Hello %s,</p>
<p>Thank you for joining Event Locator. We're excited to help you discover amazing events!</p>`,
		offsetLabels: map[string]string{"24h": "24 hours", "1h": "1 hour"},
	},
	"es": {
		reminderSubject: "Próximo evento: %s",
		reminderBody: `<h2>Recordatorio de evento</h2>
<p>Hola %s,</p>
<p>¡El evento "%s" comienza en %s!</p>
<p><strong>Detalles:</strong></p>
<ul>
<li>Fecha: %s</li>
<li>Lugar: %s</li>
<li>Descripción: %s</li>
</ul>
<p>¡No olvides revisar la página del evento para ver las novedades!</p>`,
		welcomeSubject: "¡Bienvenido a Event Locator!",
		welcomeBody: `<h2>¡Bienvenido a Event Locator!</h2>
<p>Hola %s,</p>
<p>Gracias por unirte a Event Locator. ¡Estamos encantados de ayudarte a descubrir eventos increíbles!</p>`,
		offsetLabels: map[string]string{"24h": "24 horas", "1h": "1 hora"},
	},
	"fr": {
		reminderSubject: "Événement à venir : %s",
		reminderBody: `<h2>Rappel d'événement</h2>
<p>Bonjour %s,</p>
<p>L'événement « %s » commence dans %s !</p>
<p><strong>Détails :</strong></p>
<ul>
<li>Date : %s</li>
<li>Lieu : %s</li>
<li>Description : %s</li>
</ul>
<p>N'oubliez pas de consulter la page de l'événement pour les mises à jour !</p>`,
		welcomeSubject: "Bienvenue sur Event Locator !",
		welcomeBody: `<h2>Bienvenue sur Event Locator !</h2>
<p>Bonjour %s,</p>
<p>Merci d'avoir rejoint Event Locator. Nous sommes ravis de vous aider à découvrir des événements !</p>`,
		offsetLabels: map[string]string{"24h": "24 heures", "1h": "1 heure"},
	},
}

func get(lang string) catalog {
	if c, ok := catalogs[lang]; ok {
		return c
	}
	return catalogs[Fallback]
}

// ReminderSubject renders the reminder email subject for the given language.
func ReminderSubject(lang, eventTitle string) string {
	return fmt.Sprintf(get(lang).reminderSubject, eventTitle)
}

// ReminderBody renders the reminder email HTML body for the given language.
func ReminderBody(lang, username, eventTitle, offset, eventTime, address, description string) string {
	return fmt.Sprintf(get(lang).reminderBody, username, eventTitle, OffsetLabel(lang, offset), eventTime, address, description)
}

// WelcomeSubject renders the welcome email subject for the given language.
func WelcomeSubject(lang string) string {
	return get(lang).welcomeSubject
}

// WelcomeBody renders the welcome email HTML body for the given language.
func WelcomeBody(lang, username string) string {
	return fmt.Sprintf(get(lang).welcomeBody, username)
}

// OffsetLabel translates an offset label like "24h" into human-readable form.
// Unknown offsets fall back to the raw label, which is still understandable.
func OffsetLabel(lang, offset string) string {
	if label, ok := get(lang).offsetLabels[offset]; ok {
		return label
	}
	return offset
}
