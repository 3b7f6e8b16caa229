package courier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

const (
	defaultHTTPTimeout   = 15 * time.Second
	defaultTokenLifetime = 24 * time.Hour
	tokenRefreshLeeway   = 30 * time.Second
	maxResponseBytes     = 1 << 20
)

var _ ports.CourierAdapter = (*RealCarrier)(nil)

type RealCarrierConfig struct {
	BaseURL  string
	Email    string
	Password string
	Timeout  time.Duration
}

// RealCarrier books shipments with the carrier's REST API. The login token is
// cached until shortly before it expires.
type RealCarrier struct {
	baseURL  string
	email    string
	password string
	client   *http.Client
	now      func() time.Time

	mu          sync.RWMutex
	token       string
	tokenExpiry time.Time
}

func NewRealCarrier(cfg RealCarrierConfig) (*RealCarrier, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	if cfg.Email == "" || cfg.Password == "" {
		return nil, errs.NewValueIsRequiredError("carrier credentials")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	return &RealCarrier{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		email:    cfg.Email,
		password: cfg.Password,
		client:   &http.Client{Timeout: timeout},
		now:      time.Now,
	}, nil
}

func (c *RealCarrier) Name() string             { return RealCarrierName }
func (c *RealCarrier) Mode() order.ShipmentMode { return order.ShipmentModeAPI }

type shipmentRequest struct {
	OrderID        string            `json:"order_id"`
	OrderDate      string            `json:"order_date"`
	Consignee      consignee         `json:"consignee"`
	PaymentMethod  string            `json:"payment_method"`
	CollectAmount  string            `json:"collect_amount"`
	DeclaredValue  string            `json:"declared_value"`
	WeightKg       float64           `json:"weight"`
	LengthCm       float64           `json:"length"`
	BreadthCm      float64           `json:"breadth"`
	HeightCm       float64           `json:"height"`
	Items          []shipmentItem    `json:"items"`
	AdditionalInfo map[string]string `json:"additional_info,omitempty"`
}

type consignee struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Line1   string `json:"address_line_1"`
	Line2   string `json:"address_line_2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Country string `json:"country"`
}

type shipmentItem struct {
	SKU       string `json:"sku"`
	Units     int    `json:"units"`
	UnitPrice string `json:"unit_price"`
	TaxCode   string `json:"hsn,omitempty"`
}

type shipmentResponse struct {
	AWB         string `json:"awb"`
	TrackingURL string `json:"tracking_url"`
	Status      string `json:"status"`
	Message     string `json:"message"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// Submit makes a single booking call. Failures are reported in the result and
// never retried.
func (c *RealCarrier) Submit(ctx context.Context, o *order.Order, _ string) ports.CourierResult {
	body, err := json.Marshal(newShipmentRequest(o))
	if err != nil {
		return ports.CourierResult{Error: fmt.Sprintf("encode shipment request: %v", err)}
	}
	result := ports.CourierResult{RawRequest: body}

	token, err := c.getToken(ctx, false)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	status, respBody, err := c.do(ctx, http.MethodPost, "/shipments", body, token)
	result.RawResponse = respBody
	if err != nil {
		result.Error = err.Error()
		return result
	}
	if status == http.StatusUnauthorized {
		c.invalidateToken()
	}

	var resp shipmentResponse
	if len(respBody) > 0 {
		if err = json.Unmarshal(respBody, &resp); err != nil && status >= 200 && status < 300 {
			result.Error = fmt.Sprintf("decode shipment response: %v", err)
			return result
		}
	}

	if status < 200 || status >= 300 {
		result.Error = fmt.Sprintf("carrier returned status %d", status)
		if resp.Message != "" {
			result.Error += ": " + resp.Message
		}
		return result
	}
	if resp.AWB == "" {
		result.Error = "carrier response has no AWB"
		if resp.Message != "" {
			result.Error += ": " + resp.Message
		}
		return result
	}

	result.Success = true
	result.AWB = resp.AWB
	result.TrackingURL = resp.TrackingURL
	return result
}

func newShipmentRequest(o *order.Order) shipmentRequest {
	addr := o.ShippingAddress()
	req := shipmentRequest{
		OrderID:   o.ID().String(),
		OrderDate: o.CreatedAt().UTC().Format(time.DateOnly),
		Consignee: consignee{
			Name:    addr.Name,
			Phone:   o.Phone(),
			Line1:   addr.Line1,
			Line2:   addr.Line2,
			City:    addr.City,
			State:   addr.State,
			Pincode: addr.Pincode,
			Country: addr.Country,
		},
		PaymentMethod: string(o.Payment().Method),
		CollectAmount: "0.00",
		DeclaredValue: o.GrandTotal().StringFixed(2),
	}
	if o.Payment().Method == order.PaymentCOD {
		req.CollectAmount = o.GrandTotal().StringFixed(2)
	}
	if w := o.Weight(); w != nil {
		req.WeightKg = *w
	}
	if d := o.Dimensions(); d != nil {
		req.LengthCm, req.BreadthCm, req.HeightCm = d.Length(), d.Width(), d.Height()
	}
	for _, item := range o.Items() {
		req.Items = append(req.Items, shipmentItem{
			SKU:       item.SKU(),
			Units:     item.Quantity(),
			UnitPrice: item.UnitPrice().StringFixed(2),
			TaxCode:   item.TaxCode(),
		})
	}
	if code := o.CouponCode(); code != "" {
		req.AdditionalInfo = map[string]string{"coupon_code": code}
	}
	return req
}

func (c *RealCarrier) getToken(ctx context.Context, force bool) (string, error) {
	if !force {
		if token, ok := c.cachedToken(); ok {
			return token, nil
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another caller may have refreshed while this one waited.
	if !force && c.token != "" && c.now().Before(c.tokenExpiry.Add(-tokenRefreshLeeway)) {
		return c.token, nil
	}

	body, err := json.Marshal(loginRequest{Email: c.email, Password: c.password})
	if err != nil {
		return "", err
	}

	status, respBody, err := c.do(ctx, http.MethodPost, "/auth/login", body, "")
	if err != nil {
		return "", err
	}
	if status < 200 || status >= 300 {
		return "", errs.NewExternalServiceError("carrier auth", fmt.Errorf("status %d", status))
	}

	var resp loginResponse
	if err = json.Unmarshal(respBody, &resp); err != nil {
		return "", errs.NewExternalServiceError("carrier auth", err)
	}
	if resp.Token == "" {
		return "", errs.NewExternalServiceError("carrier auth", errors.New("empty token"))
	}

	lifetime := defaultTokenLifetime
	if resp.ExpiresIn > 0 {
		lifetime = time.Duration(resp.ExpiresIn) * time.Second
	}
	c.token = resp.Token
	c.tokenExpiry = c.now().Add(lifetime)
	return c.token, nil
}

func (c *RealCarrier) cachedToken() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.token == "" || !c.now().Before(c.tokenExpiry.Add(-tokenRefreshLeeway)) {
		return "", false
	}
	return c.token, true
}

func (c *RealCarrier) invalidateToken() {
	c.mu.Lock()
	c.token = ""
	c.tokenExpiry = time.Time{}
	c.mu.Unlock()
}

func (c *RealCarrier) do(ctx context.Context, method, path string, body []byte, token string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, errs.NewExternalServiceError("carrier", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, errs.NewExternalServiceError("carrier", err)
	}
	return resp.StatusCode, respBody, nil
}
