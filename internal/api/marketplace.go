package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
)

// Listing is a service offering as the listings gateway returns it.
type Listing struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	DeliveryTime string  `json:"delivery_time,omitempty"`
	SellerID     int     `json:"seller_id"`
	CategoryID   int     `json:"category_id"`
	ImageURL     string  `json:"image_url,omitempty"`
}

// Order is a purchase between a buyer and a seller.
type Order struct {
	ID          int     `json:"id"`
	ServiceName string  `json:"service_name"`
	Amount      float64 `json:"amount"`
	Status      string  `json:"status"`
	HasReview   bool    `json:"has_review"`
	CreatedAt   string  `json:"created_at"`
	BuyerID     int     `json:"buyer_id"`
	SellerID    int     `json:"seller_id"`
	ListingID   int     `json:"listing_id,omitempty"`
}

// Profile is a seller's public business profile.
type Profile struct {
	ID          int    `json:"id"`
	UserID      int    `json:"user_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Address     string `json:"address,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Website     string `json:"website,omitempty"`
	Logo        string `json:"logo,omitempty"`
	CoverImage  string `json:"cover_image,omitempty"`
}

// CreateListingRequest is the multipart form for /listings/create. Image is
// optional; the gateway hosts it and returns the resulting URL.
type CreateListingRequest struct {
	Title       string
	Description string
	Price       float64
	Image       io.Reader
	ImageName   string
}

// CreateOrderRequest opens an order against a seller.
type CreateOrderRequest struct {
	ServiceName string  `json:"service_name"`
	Amount      float64 `json:"amount"`
	SellerID    int     `json:"seller_id"`
	ListingID   int     `json:"listing_id,omitempty"`
}

// CreateListingResponse acknowledges a created listing.
type CreateListingResponse struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}

// Listings fetches the full public catalog. No auth required.
func (c *Client) Listings(ctx context.Context) ([]Listing, error) {
	var out []Listing
	if err := c.doJSON(ctx, http.MethodGet, "/listings", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateListing posts a new listing as a multipart form.
func (c *Client) CreateListing(ctx context.Context, token string, req CreateListingRequest) (*CreateListingResponse, error) {
	var out CreateListingResponse
	err := c.doMultipart(ctx, "/listings/create", token, func(mw *multipart.Writer) error {
		if err := mw.WriteField("title", req.Title); err != nil {
			return err
		}
		if err := mw.WriteField("description", req.Description); err != nil {
			return err
		}
		if err := mw.WriteField("price", strconv.FormatFloat(req.Price, 'f', -1, 64)); err != nil {
			return err
		}
		if req.Image != nil {
			name := req.ImageName
			if name == "" {
				name = "listing.jpg"
			}
			part, err := mw.CreateFormFile("image", name)
			if err != nil {
				return err
			}
			if _, err := io.Copy(part, req.Image); err != nil {
				return err
			}
		}
		return nil
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// OrdersForUser returns every order where the user is buyer or seller.
func (c *Client) OrdersForUser(ctx context.Context, token string, userID int) ([]Order, error) {
	var out []Order
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/orders/user/%d", userID), token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateOrder opens a new order.
func (c *Client) CreateOrder(ctx context.Context, token string, req CreateOrderRequest) (*Order, error) {
	var out Order
	if err := c.doJSON(ctx, http.MethodPost, "/orders/", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateOrderStatus moves an order through its lifecycle. The status rides
// in the query string, matching the gateway's contract.
func (c *Client) UpdateOrderStatus(ctx context.Context, token string, orderID int, status string) (*Order, error) {
	path := fmt.Sprintf("/orders/%d/status?status=%s", orderID, url.QueryEscape(status))
	var out Order
	if err := c.doJSON(ctx, http.MethodPatch, path, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProfileFor fetches a seller's public profile. No auth required.
func (c *Client) ProfileFor(ctx context.Context, userID int) (*Profile, error) {
	var out Profile
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/profiles/%d", userID), "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile updates the caller's own profile.
func (c *Client) UpdateProfile(ctx context.Context, token string, p Profile) (*Profile, error) {
	var out Profile
	if err := c.doJSON(ctx, http.MethodPut, "/profiles/me", token, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadImage pushes an image to the profile media store and returns the
// hosted URL.
func (c *Client) UploadImage(ctx context.Context, token, filename string, r io.Reader) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	err := c.doMultipart(ctx, "/profiles/upload", token, func(mw *multipart.Writer) error {
		part, err := mw.CreateFormFile("image", filename)
		if err != nil {
			return err
		}
		_, err = io.Copy(part, r)
		return err
	}, &out)
	if err != nil {
		return "", err
	}
	return out.URL, nil
}
