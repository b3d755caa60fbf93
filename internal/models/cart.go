package models

// CartItem est une ligne du panier local : le produit complet plus la quantité.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// CartLine est une ligne du panier synchronisé côté serveur (miroir Redis).
// On ne garde que l'essentiel pour l'aperçu, pas le produit complet.
type CartLine struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Image       string  `json:"image"`
}
