// Command store est le client storefront en ligne de commande : session,
// catalogue, panier local et checkout contre le serveur mock, avec les
// fallbacks hors ligne du mode démo.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"shoplite/internal/client"
	"shoplite/internal/client/cart"
	"shoplite/internal/client/catalog"
	"shoplite/internal/client/checkout"
	"shoplite/internal/client/session"
	"shoplite/internal/config"
	"shoplite/internal/models"
)

func main() {
	config.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	baseURL := config.Getenv("API_URL", "http://localhost:8080/api")
	demoMode := os.Getenv("DEMO_MODE") == "1" || os.Getenv("DEMO_MODE") == "true"

	authPath, err := session.DefaultPath()
	if err != nil {
		log.Fatal("❌ Impossible de déterminer le dossier de configuration:", err)
	}

	api := client.New(baseURL)
	sess := session.NewManager(api, session.NewStore(authPath), demoMode)

	ctx := context.Background()

	// Restaure la session persistée ; une session indéchiffrable est
	// simplement effacée, on continue déconnecté.
	if err := sess.Restore(ctx); err != nil {
		log.Printf("⚠️ Session non restaurée: %v", err)
	}

	cartPath := filepath.Join(filepath.Dir(authPath), "cart.json")
	basket := cart.New()
	loadCart(cartPath, basket)

	cat := catalog.NewService(api)
	orders := checkout.NewService(api, sess)

	switch os.Args[1] {
	case "login":
		cmdLogin(ctx, sess)
	case "register":
		cmdRegister(ctx, sess)
	case "logout":
		sess.Logout()
		fmt.Println("Déconnecté.")
	case "whoami":
		cmdWhoami(sess)
	case "products":
		cmdProducts(ctx, cat)
	case "cart":
		cmdCart(ctx, cat, basket, cartPath)
	case "checkout":
		cmdCheckout(ctx, orders, basket, cartPath)
	case "orders":
		cmdOrders(ctx, orders)
	case "admin":
		cmdAdmin(ctx, cat, orders)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: store <commande> [options]

Commandes:
  login -email -password       se connecter
  register -name -email -password
  logout                       se déconnecter
  whoami                       session courante
  products [-category -q -min -max -rating]
  cart add|rm|set|show|clear   gérer le panier local
  checkout -street -city -state -zip -country [-payment]
  orders                       historique de commandes
  admin product add|set|rm     gérer le catalogue (admin)
  admin order -id -status      changer le statut d'une commande (admin)`)
}

func cmdLogin(ctx context.Context, sess *session.Manager) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "adresse email")
	password := fs.String("password", "", "mot de passe")
	fs.Parse(os.Args[2:])

	if *email == "" || *password == "" {
		log.Fatal("❌ -email et -password sont requis")
	}

	user, err := sess.Login(ctx, *email, *password)
	if err != nil {
		log.Fatal("❌ Connexion échouée: ", err)
	}
	fmt.Printf("✅ Connecté en tant que %s (%s)\n", user.Name, user.Role)
}

func cmdRegister(ctx context.Context, sess *session.Manager) {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "nom complet")
	email := fs.String("email", "", "adresse email")
	password := fs.String("password", "", "mot de passe")
	fs.Parse(os.Args[2:])

	if *name == "" || *email == "" || *password == "" {
		log.Fatal("❌ -name, -email et -password sont requis")
	}

	user, err := sess.Register(ctx, *name, *email, *password)
	if err != nil {
		log.Fatal("❌ Inscription échouée: ", err)
	}
	fmt.Printf("✅ Compte créé pour %s\n", user.Email)
}

func cmdWhoami(sess *session.Manager) {
	if !sess.IsAuthenticated() {
		fmt.Println("Non connecté.")
		return
	}
	u := sess.User()
	fmt.Printf("%s <%s> — rôle %s\n", u.Name, u.Email, u.Role)
}

func cmdProducts(ctx context.Context, cat *catalog.Service) {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	category := fs.String("category", "", "filtrer par catégorie")
	query := fs.String("q", "", "recherche texte")
	minPrice := fs.Float64("min", 0, "prix minimum")
	maxPrice := fs.Float64("max", 0, "prix maximum")
	rating := fs.Float64("rating", 0, "note minimum")
	fs.Parse(os.Args[2:])

	products, err := cat.Products(ctx, catalog.Filters{
		Category: *category,
		MinPrice: *minPrice,
		MaxPrice: *maxPrice,
		Rating:   *rating,
		Search:   *query,
	})
	if err != nil {
		log.Fatal("❌ Catalogue indisponible: ", err)
	}

	for _, p := range products {
		fmt.Printf("%-4s %-35s %8.2f€  stock:%d  ★%.1f\n", p.ID, p.Name, p.Price, p.Stock, p.Rating)
	}
}

func cmdCart(ctx context.Context, cat *catalog.Service, basket *cart.Cart, cartPath string) {
	if len(os.Args) < 3 {
		log.Fatal("❌ Sous-commande requise: add, rm, set, show, clear")
	}

	switch os.Args[2] {
	case "add":
		fs := flag.NewFlagSet("cart add", flag.ExitOnError)
		id := fs.String("id", "", "identifiant produit")
		qty := fs.Int("qty", 1, "quantité")
		fs.Parse(os.Args[3:])

		product, err := cat.Product(ctx, *id)
		if err != nil {
			log.Fatal("❌ ", err)
		}
		basket.AddItem(*product, *qty)
		saveCart(cartPath, basket)
		fmt.Printf("✅ %s ajouté (panier: %d articles)\n", product.Name, basket.TotalItems())

	case "rm":
		fs := flag.NewFlagSet("cart rm", flag.ExitOnError)
		id := fs.String("id", "", "identifiant produit")
		fs.Parse(os.Args[3:])

		basket.RemoveItem(*id)
		saveCart(cartPath, basket)
		fmt.Println("✅ Ligne supprimée")

	case "set":
		fs := flag.NewFlagSet("cart set", flag.ExitOnError)
		id := fs.String("id", "", "identifiant produit")
		qty := fs.Int("qty", 1, "quantité")
		fs.Parse(os.Args[3:])

		basket.UpdateQuantity(*id, *qty)
		saveCart(cartPath, basket)
		fmt.Println("✅ Quantité mise à jour")

	case "show":
		for _, item := range basket.Items() {
			fmt.Printf("%-4s %-35s ×%d  %8.2f€\n",
				item.Product.ID, item.Product.Name, item.Quantity,
				item.Product.Price*float64(item.Quantity))
		}
		fmt.Printf("Total: %.2f€ (%d articles)\n", basket.TotalPrice(), basket.TotalItems())

	case "clear":
		basket.Clear()
		saveCart(cartPath, basket)
		fmt.Println("✅ Panier vidé")

	default:
		log.Fatal("❌ Sous-commande inconnue: ", os.Args[2])
	}
}

func cmdCheckout(ctx context.Context, orders *checkout.Service, basket *cart.Cart, cartPath string) {
	fs := flag.NewFlagSet("checkout", flag.ExitOnError)
	street := fs.String("street", "", "rue")
	city := fs.String("city", "", "ville")
	state := fs.String("state", "", "région")
	zip := fs.String("zip", "", "code postal")
	country := fs.String("country", "", "pays")
	payment := fs.String("payment", "card", "moyen de paiement")
	fs.Parse(os.Args[2:])

	address := models.Address{
		Street:  *street,
		City:    *city,
		State:   *state,
		ZipCode: *zip,
		Country: *country,
	}
	if !address.Complete() {
		log.Fatal("❌ Tous les champs d'adresse sont requis")
	}

	order, err := orders.PlaceOrder(ctx, basket, address, *payment)
	if err != nil {
		log.Fatal("❌ Commande refusée: ", err)
	}
	saveCart(cartPath, basket)
	fmt.Printf("✅ Commande %s passée — total %.2f€ (%s)\n", order.ID, order.Total, order.Status)
}

func cmdOrders(ctx context.Context, orders *checkout.Service) {
	list, err := orders.Orders(ctx)
	if err != nil {
		log.Fatal("❌ Historique indisponible: ", err)
	}
	if len(list) == 0 {
		fmt.Println("Aucune commande.")
		return
	}
	for _, o := range list {
		fmt.Printf("%-38s %10.2f€  %-10s %s\n", o.ID, o.Total, o.Status, o.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func cmdAdmin(ctx context.Context, cat *catalog.Service, orders *checkout.Service) {
	if len(os.Args) < 3 {
		log.Fatal("❌ Sous-commande requise: product, order")
	}

	switch os.Args[2] {
	case "product":
		cmdAdminProduct(ctx, cat)

	case "order":
		fs := flag.NewFlagSet("admin order", flag.ExitOnError)
		id := fs.String("id", "", "identifiant commande")
		status := fs.String("status", "", "nouveau statut")
		fs.Parse(os.Args[3:])

		if *id == "" || !models.ValidStatus(*status) {
			log.Fatal("❌ -id et un -status valide sont requis (pending, processing, shipped, delivered, cancelled)")
		}
		order, err := orders.UpdateStatus(ctx, *id, *status)
		if err != nil {
			log.Fatal("❌ Mise à jour refusée: ", err)
		}
		fmt.Printf("✅ Commande %s → %s\n", order.ID, order.Status)

	default:
		log.Fatal("❌ Sous-commande inconnue: ", os.Args[2])
	}
}

func cmdAdminProduct(ctx context.Context, cat *catalog.Service) {
	if len(os.Args) < 4 {
		log.Fatal("❌ Sous-commande requise: add, set, rm")
	}

	switch os.Args[3] {
	case "add":
		fs := flag.NewFlagSet("admin product add", flag.ExitOnError)
		name := fs.String("name", "", "nom du produit")
		description := fs.String("description", "", "description")
		price := fs.Float64("price", 0, "prix")
		category := fs.String("category", "", "catégorie")
		stock := fs.Int("stock", 0, "stock initial")
		fs.Parse(os.Args[4:])

		if *name == "" {
			log.Fatal("❌ -name est requis")
		}
		created, err := cat.CreateProduct(ctx, models.Product{
			Name:        *name,
			Description: *description,
			Price:       *price,
			Category:    *category,
			Stock:       *stock,
		})
		if err != nil {
			log.Fatal("❌ Création refusée: ", err)
		}
		fmt.Printf("✅ Produit %s créé (%s)\n", created.Name, created.ID)

	case "set":
		fs := flag.NewFlagSet("admin product set", flag.ExitOnError)
		id := fs.String("id", "", "identifiant produit")
		price := fs.Float64("price", -1, "nouveau prix")
		stock := fs.Int("stock", -1, "nouveau stock")
		fs.Parse(os.Args[4:])

		product, err := cat.Product(ctx, *id)
		if err != nil {
			log.Fatal("❌ ", err)
		}
		if *price >= 0 {
			product.Price = *price
		}
		if *stock >= 0 {
			product.Stock = *stock
		}
		updated, err := cat.UpdateProduct(ctx, *product)
		if err != nil {
			log.Fatal("❌ Mise à jour refusée: ", err)
		}
		fmt.Printf("✅ Produit %s mis à jour — %.2f€, stock %d\n", updated.Name, updated.Price, updated.Stock)

	case "rm":
		fs := flag.NewFlagSet("admin product rm", flag.ExitOnError)
		id := fs.String("id", "", "identifiant produit")
		fs.Parse(os.Args[4:])

		if err := cat.DeleteProduct(ctx, *id); err != nil {
			log.Fatal("❌ Suppression refusée: ", err)
		}
		fmt.Println("✅ Produit supprimé")

	default:
		log.Fatal("❌ Sous-commande inconnue: ", os.Args[3])
	}
}

// loadCart recharge le panier persisté entre deux invocations du CLI.
func loadCart(path string, basket *cart.Cart) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var items []models.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Printf("⚠️ Panier persisté illisible, on repart à vide: %v", err)
		return
	}
	basket.Replace(items)
}

func saveCart(path string, basket *cart.Cart) {
	raw, err := json.MarshalIndent(basket.Items(), "", "  ")
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		log.Printf("⚠️ Panier non sauvegardé: %v", err)
	}
}
