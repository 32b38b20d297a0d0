package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kalambet/restora/internal/api"
	"github.com/kalambet/restora/internal/reconcile"
	"github.com/kalambet/restora/internal/remote"
	"github.com/kalambet/restora/internal/restaurant"
	"github.com/kalambet/restora/internal/storage"
)

const testToken = "test-admin-token"

type testServer struct {
	server *httptest.Server
	repo   *restaurant.Repository
	store  *storage.Store
}

// newTestServer runs the real API over an in-memory store and points the
// CLI's client factories at it. cacheDir selects the local cache; ":memory:"
// gives every command a fresh one.
func newTestServer(t *testing.T, cacheDir string) *testServer {
	t.Helper()
	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	repo := restaurant.NewRepository(store)
	ts := &testServer{
		server: httptest.NewServer(api.NewRouter(api.Deps{Repo: repo, Queue: store, Token: testToken})),
		repo:   repo,
		store:  store,
	}
	t.Cleanup(ts.server.Close)

	useServer(t, ts.server.URL, cacheDir)
	return ts
}

func useServer(t *testing.T, baseURL, cacheDir string) {
	t.Helper()
	origAPI, origLocal := newAPIClient, newLocalClient
	t.Cleanup(func() { newAPIClient, newLocalClient = origAPI, origLocal })

	newAPIClient = func() (*remote.Client, error) {
		return remote.New(baseURL, testToken), nil
	}
	newLocalClient = func() (*localClient, error) {
		cache, err := storage.Open(cacheDir)
		if err != nil {
			return nil, err
		}
		client := remote.New(baseURL, testToken)
		opts := reconcile.DefaultOptions()
		opts.FetchTimeout = 2 * time.Second
		opts.WriteTimeout = 2 * time.Second
		opts.PostWriteDelay = 10 * time.Millisecond
		return &localClient{api: client, cache: cache, rec: reconcile.New(client, cache, opts)}, nil
	}
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCmd executes the root command with args and returns what it wrote to stdout.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	noColor = true

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCmd(t, args...)
	if err != nil {
		t.Fatalf("restora %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func decodeOutput[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("decoding output %q: %v", out, err)
	}
	return v
}

func createMenuItem(t *testing.T, repo *restaurant.Repository, name string, price float64) restaurant.MenuItem {
	t.Helper()
	item, err := repo.CreateMenuItem(restaurant.MenuItemFields{Name: &name, Price: &price})
	if err != nil {
		t.Fatalf("CreateMenuItem: %v", err)
	}
	return item
}

func TestReviewAdd_ReachesServer(t *testing.T) {
	ts := newTestServer(t, ":memory:")
	item := createMenuItem(t, ts.repo, "Soufflé", 12)

	mustRun(t, "review", "add", "--item", item.ID, "--rating", "5", "--text", "Light and airy", "--name", "Ana")

	reviews, err := ts.repo.ListReviews(item.ID)
	if err != nil {
		t.Fatalf("ListReviews: %v", err)
	}
	if len(reviews) != 1 {
		t.Fatalf("server has %d reviews, want 1", len(reviews))
	}
	if reviews[0].ReviewerName != "Ana" || reviews[0].Rating != 5 {
		t.Errorf("review = %+v", reviews[0])
	}
	if reviews[0].ItemName != "Soufflé" {
		t.Errorf("item_name = %q, want Soufflé", reviews[0].ItemName)
	}

	out := mustRun(t, "review", "list", "--json")
	listed := decodeOutput[[]restaurant.Review](t, out)
	if len(listed) != 1 || listed[0].ID != reviews[0].ID {
		t.Fatalf("review list = %+v, want the created review", listed)
	}
}

func TestReviewAdd_Invalid(t *testing.T) {
	newTestServer(t, ":memory:")

	_, err := runCmd(t, "review", "add", "--item", "x", "--rating", "9", "--text", "hm")
	if err == nil || !strings.Contains(err.Error(), "rating") {
		t.Fatalf("expected rating validation error, got %v", err)
	}
}

func TestReviewAdd_OfflineKeepsLocalCopy(t *testing.T) {
	// Nothing listens on a closed server's address.
	dead := httptest.NewServer(nil)
	deadURL := dead.URL
	dead.Close()

	useServer(t, deadURL, t.TempDir())

	mustRun(t, "review", "add", "--item", "item-1", "--rating", "4", "--text", "Good bread")

	out := mustRun(t, "review", "list", "--json")
	listed := decodeOutput[[]restaurant.Review](t, out)
	if len(listed) != 1 {
		t.Fatalf("got %d cached reviews, want 1", len(listed))
	}
	if listed[0].Text != "Good bread" || listed[0].ReviewerName != restaurant.DefaultReviewerName {
		t.Errorf("cached review = %+v", listed[0])
	}
}

func TestReviewList_FiltersByItem(t *testing.T) {
	ts := newTestServer(t, ":memory:")
	a := createMenuItem(t, ts.repo, "Ratatouille", 15)
	b := createMenuItem(t, ts.repo, "Crêpe", 7)
	for _, r := range []restaurant.Review{
		{ItemID: a.ID, Rating: 4, Text: "Rustic"},
		{ItemID: b.ID, Rating: 5, Text: "Buttery"},
	} {
		if _, err := ts.repo.CreateReview(r); err != nil {
			t.Fatalf("CreateReview: %v", err)
		}
	}

	out := mustRun(t, "review", "list", "--item", b.ID, "--json")
	listed := decodeOutput[[]restaurant.Review](t, out)
	if len(listed) != 1 || listed[0].Text != "Buttery" {
		t.Fatalf("filtered reviews = %+v", listed)
	}
}

func TestReservationApprove(t *testing.T) {
	ts := newTestServer(t, ":memory:")
	res, err := ts.repo.CreateReservation(restaurant.Reservation{
		Name: "Ana", Phone: "555-0101", Date: "2026-05-01", Time: "19:30", Guests: 2,
	})
	if err != nil {
		t.Fatalf("CreateReservation: %v", err)
	}

	mustRun(t, "reservation", "approve", res.ID[:8])

	got, err := ts.repo.GetReservation(res.ID)
	if err != nil {
		t.Fatalf("GetReservation: %v", err)
	}
	if got.Status != restaurant.StatusApproved {
		t.Errorf("status = %q, want approved", got.Status)
	}
}

func TestReservationAddAndList(t *testing.T) {
	ts := newTestServer(t, ":memory:")

	mustRun(t, "reservation", "add", "--name", "Léa", "--phone", "555-0102",
		"--date", "2026-06-12", "--time", "20:00", "--guests", "4", "--notes", "window seat")

	list, err := ts.repo.ListReservations(restaurant.ReservationFilter{})
	if err != nil {
		t.Fatalf("ListReservations: %v", err)
	}
	if len(list) != 1 || list[0].Status != restaurant.StatusPending || list[0].Guests != 4 {
		t.Fatalf("server reservations = %+v", list)
	}

	out := mustRun(t, "reservation", "list", "--status", "approved", "--json")
	if got := decodeOutput[[]restaurant.Reservation](t, out); len(got) != 0 {
		t.Errorf("approved reservations = %+v, want none", got)
	}

	out = mustRun(t, "reservation", "list")
	if !strings.Contains(out, "Léa") || !strings.Contains(out, "pending") {
		t.Errorf("table output missing reservation:\n%s", out)
	}
}

func TestReservationDelete_RequiresTarget(t *testing.T) {
	newTestServer(t, ":memory:")

	if _, err := runCmd(t, "reservation", "delete"); err == nil {
		t.Fatal("expected error without id or --all")
	}
	if _, err := runCmd(t, "reservation", "delete", "abc", "--all"); err == nil {
		t.Fatal("expected error with both id and --all")
	}
}

func TestReservationDelete_All(t *testing.T) {
	ts := newTestServer(t, ":memory:")
	for _, name := range []string{"Ana", "Bo"} {
		if _, err := ts.repo.CreateReservation(restaurant.Reservation{
			Name: name, Phone: "1", Date: "2026-05-01", Time: "19:00", Guests: 2,
		}); err != nil {
			t.Fatalf("CreateReservation: %v", err)
		}
	}

	mustRun(t, "reservation", "delete", "--all")

	list, err := ts.repo.ListReservations(restaurant.ReservationFilter{})
	if err != nil {
		t.Fatalf("ListReservations: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("%d reservations left, want 0", len(list))
	}
}

func TestMenuAddAndList(t *testing.T) {
	ts := newTestServer(t, ":memory:")

	mustRun(t, "menu", "add", "--name", "Bouillabaisse", "--price", "28.5", "--category", "Mains")

	items, err := ts.repo.ListMenu(restaurant.MenuFilter{})
	if err != nil {
		t.Fatalf("ListMenu: %v", err)
	}
	if len(items) != 1 || items[0].Category != "Mains" || items[0].Price != 28.5 {
		t.Fatalf("menu = %+v", items)
	}

	out := mustRun(t, "menu", "list", "--category", "Mains", "--json")
	listed := decodeOutput[[]restaurant.MenuItem](t, out)
	if len(listed) != 1 || listed[0].Name != "Bouillabaisse" {
		t.Errorf("menu list = %+v", listed)
	}
}

func TestMenuAdd_MissingName(t *testing.T) {
	newTestServer(t, ":memory:")

	if _, err := runCmd(t, "menu", "add", "--price", "3"); err == nil {
		t.Fatal("expected validation error without --name")
	}
}

func TestOrderStatus(t *testing.T) {
	ts := newTestServer(t, ":memory:")
	o, _, err := ts.repo.CreateOrder(restaurant.Order{
		Items:    []restaurant.OrderItem{{Name: "Baguette", Price: 3, Qty: 2}},
		Subtotal: 6, Total: 6,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	mustRun(t, "order", "status", o.ID, "delivered")

	got, err := ts.repo.GetOrder(o.ID)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if got.Status != "delivered" {
		t.Errorf("status = %q, want delivered", got.Status)
	}
}

func TestSales_GroupByItem(t *testing.T) {
	ts := newTestServer(t, ":memory:")
	if _, _, err := ts.repo.CreateOrder(restaurant.Order{
		Items:    []restaurant.OrderItem{{Name: "Baguette", Price: 3, Qty: 2}, {Name: "Brie", Price: 8, Qty: 1}},
		Subtotal: 14, Total: 14,
	}); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	out := mustRun(t, "sales", "--group-by", "item", "--json")
	rows := decodeOutput[[]restaurant.ItemSummary](t, out)
	if len(rows) != 2 {
		t.Fatalf("got %d summary rows, want 2", len(rows))
	}

	if _, err := runCmd(t, "sales", "--group-by", "week"); err == nil {
		t.Error("expected error for unknown grouping")
	}
}

func TestSync(t *testing.T) {
	ts := newTestServer(t, ":memory:")
	item := createMenuItem(t, ts.repo, "Cassoulet", 19)
	if _, err := ts.repo.CreateReview(restaurant.Review{ItemID: item.ID, Rating: 5, Text: "Hearty"}); err != nil {
		t.Fatalf("CreateReview: %v", err)
	}

	mustRun(t, "sync")
}

func TestCommandArgs(t *testing.T) {
	newTestServer(t, ":memory:")

	if _, err := runCmd(t, "review", "delete"); err == nil {
		t.Error("expected error for review delete without id")
	}
	if _, err := runCmd(t, "order", "status", "only-id"); err == nil {
		t.Error("expected error for order status with one arg")
	}
}

func TestColorize(t *testing.T) {
	noColor = false
	defer func() { noColor = true }()

	got := colorize(colorGreen, "ok")
	if got != colorGreen+"ok"+colorReset {
		t.Errorf("colorize = %q", got)
	}

	noColor = true
	if got := colorize(colorGreen, "ok"); got != "ok" {
		t.Errorf("colorize with noColor = %q, want plain", got)
	}
}

func TestStars(t *testing.T) {
	tests := []struct {
		rating int
		want   string
	}{
		{0, "☆☆☆☆☆"},
		{3, "★★★☆☆"},
		{5, "★★★★★"},
		{9, "★★★★★"},
	}
	for _, tt := range tests {
		if got := stars(tt.rating); got != tt.want {
			t.Errorf("stars(%d) = %q, want %q", tt.rating, got, tt.want)
		}
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("0123456789"); got != "01234567" {
		t.Errorf("shortID = %q", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("shortID(short) = %q", got)
	}
}
