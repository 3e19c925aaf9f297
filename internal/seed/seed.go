// Package seed provides the default dataset the client falls back to
// when the local store holds nothing yet, mirroring the collections the
// backend artifact ships with.
package seed

import (
	"time"

	"wikibase/internal/models"
)

// Categories returns the default category collection. A fresh slice is
// returned on every call so callers can mutate freely.
func Categories() []models.Category {
	return []models.Category{
		{ID: "1", Name: "Ressources Humaines", Icon: "👥"},
		{ID: "2", Name: "Informatique", Icon: "💻"},
		{ID: "3", Name: "Finance", Icon: "💶"},
		{ID: "4", Name: "Qualité", Icon: "✅"},
	}
}

// Articles returns the default article collection.
func Articles() []models.Article {
	welcome := time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)
	vpn := time.Date(2025, 10, 12, 14, 30, 0, 0, time.UTC)
	return []models.Article{
		{
			ID:          "1",
			Title:       "Guide d'accueil des nouveaux employés",
			Description: "Tout ce qu'il faut savoir pour bien démarrer.",
			Category:    "Ressources Humaines",
			Content:     "<h2>Bienvenue</h2><p>Ce guide couvre vos premiers jours dans l'entreprise.</p>",
			Author:      "Service RH",
			CreatedAt:   welcome,
			UpdatedAt:   welcome,
		},
		{
			ID:          "2",
			Title:       "Configuration du VPN",
			Description: "Accéder au réseau interne depuis l'extérieur.",
			Category:    "Informatique",
			Content:     "<h2>Installation</h2><p>Téléchargez le client VPN puis suivez les étapes.</p>",
			Author:      "Support IT",
			CreatedAt:   vpn,
			UpdatedAt:   vpn,
		},
	}
}
