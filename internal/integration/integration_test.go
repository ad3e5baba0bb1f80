//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	httpapi "github.com/estate-hub/estate-hub/internal/api/http"
	"github.com/estate-hub/estate-hub/internal/application/agreement"
	"github.com/estate-hub/estate-hub/internal/application/auth"
	"github.com/estate-hub/estate-hub/internal/application/ledger"
	"github.com/estate-hub/estate-hub/internal/application/notification"
	"github.com/estate-hub/estate-hub/internal/application/property"
	"github.com/estate-hub/estate-hub/internal/application/sale"
	"github.com/estate-hub/estate-hub/internal/infrastructure/postgres"
	"github.com/estate-hub/estate-hub/internal/infrastructure/sse"
	"github.com/estate-hub/estate-hub/internal/migrations"
)

const testPassword = "S3cure!Passw0rd"

type actor struct {
	id    string
	token string
}

func TestRentAgreementLifecycleIntegration(t *testing.T) {
	server, cleanup := newTestServer(t)
	defer cleanup()

	landlord := registerAndLogin(t, server.URL, "landlord1", "LANDLORD")
	tenant := registerAndLogin(t, server.URL, "tenant1", "TENANT")
	tenant2 := registerAndLogin(t, server.URL, "tenant2", "TENANT")

	var prop map[string]interface{}
	doJSON(t, landlord, http.MethodPost, server.URL+"/properties", map[string]string{"title": "Harbour flat"}, http.StatusCreated, &prop)
	propID := prop["id"].(string)

	var first, second map[string]interface{}
	doJSON(t, tenant, http.MethodPost, server.URL+"/agreements/rent", map[string]interface{}{
		"seller": landlord.id, "property": propID, "monthlyRent": 150000, "status": "COMPLETED",
	}, http.StatusCreated, &first)
	if first["status"] != "PENDING" {
		t.Fatalf("expected PENDING, got %v", first["status"])
	}
	doJSON(t, tenant2, http.MethodPost, server.URL+"/agreements/rent", map[string]interface{}{
		"seller": landlord.id, "property": propID,
	}, http.StatusCreated, &second)

	var accepted map[string]map[string]interface{}
	doJSON(t, landlord, http.MethodPut, server.URL+"/agreements/rent/"+first["id"].(string)+"/accept", nil, http.StatusOK, &accepted)
	if accepted["agreement"]["status"] != "SETTLED" || accepted["property"]["status"] != "RESERVED" {
		t.Fatalf("unexpected accept result: %v", accepted)
	}

	// A second reservation of the same property is refused and leaves the
	// competing agreement pending.
	doJSON(t, landlord, http.MethodPut, server.URL+"/agreements/rent/"+second["id"].(string)+"/accept", nil, http.StatusConflict, nil)

	var page map[string]interface{}
	doJSON(t, landlord, http.MethodGet, server.URL+"/agreements/rent?page=0", nil, http.StatusOK, &page)
	if page["total"].(float64) != 2 || page["page"].(float64) != 1 || page["pages"].(float64) != 1 {
		t.Fatalf("unexpected page: %v", page)
	}

	doJSON(t, landlord, http.MethodPut, server.URL+"/agreements/rent/"+first["id"].(string)+"/complete", nil, http.StatusOK, nil)
	assertPropertyStatus(t, landlord, server.URL, propID, "SOLD")

	doJSON(t, tenant, http.MethodDelete, server.URL+"/agreements/rent/"+first["id"].(string), nil, http.StatusOK, nil)
	assertPropertyStatus(t, landlord, server.URL, propID, "FREE")

	doJSON(t, tenant, http.MethodPut, server.URL+"/agreements/rent/"+first["id"].(string), map[string]interface{}{"terms": "x"}, http.StatusNotFound, nil)
}

func TestSaleLifecycleIntegration(t *testing.T) {
	server, cleanup := newTestServer(t)
	defer cleanup()

	seller := registerAndLogin(t, server.URL, "seller1", "SELLER")
	buyer := registerAndLogin(t, server.URL, "buyer1", "BUYER")

	var prop map[string]interface{}
	doJSON(t, seller, http.MethodPost, server.URL+"/properties", map[string]string{"title": "Cottage"}, http.StatusCreated, &prop)
	propID := prop["id"].(string)

	var created map[string]interface{}
	doJSON(t, buyer, http.MethodPost, server.URL+"/sales/create", map[string]interface{}{
		"seller": seller.id, "property": propID, "price": 42000000,
	}, http.StatusCreated, &created)
	saleID := created["id"].(string)
	assertPropertyStatus(t, seller, server.URL, propID, "RESERVED")
	assertSaleRefs(t, buyer, server.URL, saleID, true)
	assertSaleRefs(t, seller, server.URL, saleID, true)

	var updated map[string]interface{}
	doJSON(t, buyer, http.MethodPut, server.URL+"/sales/update/"+saleID, map[string]interface{}{"price": 41000000}, http.StatusOK, &updated)
	if updated["status"] != "PENDING" || updated["price"].(float64) != 41000000 {
		t.Fatalf("unexpected update result: %v", updated)
	}

	doJSON(t, buyer, http.MethodPut, server.URL+"/sales/accept/"+saleID, nil, http.StatusForbidden, nil)
	doJSON(t, seller, http.MethodPut, server.URL+"/sales/accept/"+saleID, nil, http.StatusOK, nil)
	assertPropertyStatus(t, seller, server.URL, propID, "SOLD")

	doJSON(t, buyer, http.MethodDelete, server.URL+"/sales/delete/"+saleID, nil, http.StatusOK, nil)
	assertPropertyStatus(t, seller, server.URL, propID, "FREE")
	assertSaleRefs(t, buyer, server.URL, saleID, false)
	assertSaleRefs(t, seller, server.URL, saleID, false)
}

func registerAndLogin(t *testing.T, baseURL, username, role string) actor {
	t.Helper()
	anon := actor{}
	doJSON(t, anon, http.MethodPost, baseURL+"/auth/register", map[string]string{
		"username": username, "password": testPassword, "role": role,
	}, http.StatusCreated, nil)

	var out struct {
		Profile struct {
			ID string `json:"id"`
		} `json:"profile"`
		SessionToken string `json:"session_token"`
	}
	doJSON(t, anon, http.MethodPost, baseURL+"/auth/login", map[string]string{
		"username": username, "password": testPassword,
	}, http.StatusOK, &out)
	return actor{id: out.Profile.ID, token: out.SessionToken}
}

func assertPropertyStatus(t *testing.T, a actor, baseURL, propertyID, want string) {
	t.Helper()
	var p map[string]interface{}
	doJSON(t, a, http.MethodGet, baseURL+"/properties/"+propertyID, nil, http.StatusOK, &p)
	if p["status"] != want {
		t.Fatalf("property status = %v, want %s", p["status"], want)
	}
}

func assertSaleRefs(t *testing.T, a actor, baseURL, saleID string, want bool) {
	t.Helper()
	var me struct {
		Sales []string `json:"sales"`
	}
	doJSON(t, a, http.MethodGet, baseURL+"/auth/me", nil, http.StatusOK, &me)
	found := false
	for _, id := range me.Sales {
		if id == saleID {
			found = true
		}
	}
	if found != want {
		t.Fatalf("sale %s in profile sales = %v, want %v (%v)", saleID, found, want, me.Sales)
	}
}

func doJSON(t *testing.T, a actor, method, url string, body interface{}, wantStatus int, out interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s: status %d, want %d: %s", method, url, resp.StatusCode, wantStatus, string(data))
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			t.Fatalf("decode %s: %v", string(data), err)
		}
	}
}

func newTestServer(t *testing.T) (*httptest.Server, func()) {
	t.Helper()
	dsn := testDatabaseURL(t)

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, dsn)
	if err != nil {
		t.Fatalf("db pool: %v", err)
	}

	logger := zerolog.Nop()
	if _, err := postgres.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		t.Fatalf("migrations: %v", err)
	}
	if err := resetDatabase(ctx, pool); err != nil {
		pool.Close()
		t.Fatalf("reset db: %v", err)
	}

	txManager := postgres.NewTxManager(pool, logger)
	sseHub := sse.NewHub(logger)
	l := ledger.New(logger)

	apiServer := httpapi.NewServer(httpapi.Options{
		AuthService:       auth.NewService(postgres.NewProfileRepository(pool), postgres.NewSessionRepository(pool), 24*time.Hour, logger),
		AgreementService:  agreement.NewService(txManager, l, logger),
		SaleService:       sale.NewService(txManager, l, notification.NewDispatcher(sseHub, logger), logger),
		PropertyService:   property.NewService(postgres.NewPropertyRepository(pool), logger),
		SSEHub:            sseHub,
		Logger:            logger,
		SessionCookieName: "estate_hub_session",
	})
	server := httptest.NewServer(apiServer.Router())

	cleanup := func() {
		server.Close()
		sseHub.Stop()
		pool.Close()
	}

	return server, cleanup
}

func testDatabaseURL(t *testing.T) string {
	t.Helper()
	if dsn := os.Getenv("TEST_DATABASE_URL"); dsn != "" {
		return dsn
	}
	t.Skip("TEST_DATABASE_URL not set; skipping integration tests")
	return ""
}

func resetDatabase(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		TRUNCATE TABLE
			sales,
			rent_agreements,
			properties,
			sessions,
			profiles
		RESTART IDENTITY CASCADE
	`)
	return err
}
