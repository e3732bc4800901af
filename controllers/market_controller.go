package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"jamaah_server/models"
	"jamaah_server/services"
	"jamaah_server/utils"
)

// MarketController handles marketplace listings, reviews and donation
// campaigns.
type MarketController struct {
	Market   *services.MarketService
	Auth     *services.AuthService
	Profiles *services.ProfileService
}

// NewMarketController creates a new instance of MarketController.
func NewMarketController(market *services.MarketService, auth *services.AuthService, profiles *services.ProfileService) *MarketController {
	return &MarketController{Market: market, Auth: auth, Profiles: profiles}
}

// HandleListProducts returns listings, newest first. Public.
func (c *MarketController) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := c.Market.ListProducts(r.Context())
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, products)
}

// HandleCreateProduct stores a new listing for the caller.
func (c *MarketController) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r, c.Auth)
	if user == nil {
		return
	}

	var req services.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, err := c.Profiles.GetOrCreate(r.Context(), user)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	product, err := c.Market.CreateProduct(r.Context(), user.ID, profile.Name, req)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, product)
}

// HandleDeleteProduct removes an owned listing.
func (c *MarketController) HandleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r, c.Auth)
	if user == nil {
		return
	}

	if err := c.Market.DeleteProduct(r.Context(), user.ID, mux.Vars(r)["id"]); err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// HandleListReviews returns a product's reviews. Public.
func (c *MarketController) HandleListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := c.Market.ListReviews(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reviews)
}

// HandleAddReview attaches a rating to a product.
func (c *MarketController) HandleAddReview(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r, c.Auth)
	if user == nil {
		return
	}

	var req struct {
		Rating int    `json:"rating"`
		Text   string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, err := c.Profiles.GetOrCreate(r.Context(), user)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	review, err := c.Market.AddReview(r.Context(), user.ID, profile.Name, mux.Vars(r)["id"], req.Rating, req.Text)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, review)
}

// HandleListCampaigns returns donation campaigns. Public.
func (c *MarketController) HandleListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := c.Market.ListCampaigns(r.Context())
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, campaigns)
}

// HandleCreateCampaign stores a new donation campaign.
func (c *MarketController) HandleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r, c.Auth)
	if user == nil {
		return
	}

	var campaign models.DonationCampaign
	if err := json.NewDecoder(r.Body).Decode(&campaign); err != nil {
		utils.WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := c.Market.CreateCampaign(r.Context(), user.ID, campaign)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, created)
}

// HandleDonate adds a donation amount to a campaign total. Demo only.
func (c *MarketController) HandleDonate(w http.ResponseWriter, r *http.Request) {
	user := requireUser(w, r, c.Auth)
	if user == nil {
		return
	}

	var req struct {
		Amount float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	campaign, err := c.Market.Donate(r.Context(), mux.Vars(r)["id"], req.Amount)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, campaign)
}
