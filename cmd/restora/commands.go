package main

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kalambet/restora/internal/config"
	"github.com/kalambet/restora/internal/menuimport"
	"github.com/kalambet/restora/internal/reconcile"
	"github.com/kalambet/restora/internal/remote"
	"github.com/kalambet/restora/internal/restaurant"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// --- menu ---

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Browse and manage the menu",
}

var menuListCmd = &cobra.Command{
	Use:   "list",
	Short: "List menu items",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		search, _ := cmd.Flags().GetString("search")

		client, err := newAPIClient()
		if err != nil {
			return err
		}
		items, err := client.ListMenu(cmd.Context(), restaurant.MenuFilter{Category: category, Search: search})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, items)
		}
		if len(items) == 0 {
			fmt.Fprintln(out, "No menu items.")
			return nil
		}
		tw := newTable(out)
		fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tAVAILABLE")
		for _, it := range items {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\n", shortID(it.ID), it.Name, it.Category, restaurant.FormatPrice(it.Price), it.Available)
		}
		return tw.Flush()
	},
}

var menuAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a menu item",
	Long: `Add a menu item.

Examples:
  restora menu add --name "Coq au Vin" --price 24.5 --category Mains
  restora menu add --name "Tarte Tatin" --price 9 --description "Caramelised apples"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		price, _ := cmd.Flags().GetFloat64("price")

		f := restaurant.MenuItemFields{Name: &name, Price: &price}
		for flag, dst := range map[string]**string{
			"category":    &f.Category,
			"description": &f.Description,
			"image":       &f.Image,
		} {
			if cmd.Flags().Changed(flag) {
				v, _ := cmd.Flags().GetString(flag)
				*dst = &v
			}
		}
		if err := restaurant.ValidateMenuItem(f); err != nil {
			return err
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}
		item, err := client.CreateMenuItem(cmd.Context(), f)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), item)
		}
		printSuccess("Added %s (%s) at %s", item.Name, shortID(item.ID), restaurant.FormatPrice(item.Price))
		return nil
	},
}

var menuDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a menu item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		if err := client.DeleteMenuItem(cmd.Context(), args[0]); err != nil {
			return err
		}
		printSuccess("Deleted menu item %s", args[0])
		return nil
	},
}

var menuImportCmd = &cobra.Command{
	Use:   "import <file.pdf>",
	Short: "Import menu items from a PDF menu",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		printStep("Reading %s", args[0])
		text, err := menuimport.ExtractText(args[0])
		if err != nil {
			return err
		}
		items := menuimport.Parse(text)
		if len(items) == 0 {
			return fmt.Errorf("no priced items found in %s", args[0])
		}

		out := cmd.OutOrStdout()
		if dryRun {
			if jsonOutput {
				return printJSON(out, items)
			}
			tw := newTable(out)
			fmt.Fprintln(tw, "NAME\tCATEGORY\tPRICE")
			for _, it := range items {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", it.Name, it.Category, restaurant.FormatPrice(it.Price))
			}
			return tw.Flush()
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}
		created, err := menuimport.Import(cmd.Context(), client, items)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(out, created)
		}
		printSuccess("Imported %d menu items", len(created))
		return nil
	},
}

func init() {
	menuListCmd.Flags().String("category", "", "only items in this category")
	menuListCmd.Flags().String("search", "", "case-insensitive name search")

	menuAddCmd.Flags().String("name", "", "item name (required)")
	menuAddCmd.Flags().Float64("price", 0, "item price (required)")
	menuAddCmd.Flags().String("category", "", "menu category")
	menuAddCmd.Flags().String("description", "", "short description")
	menuAddCmd.Flags().String("image", "", "image URL")

	menuImportCmd.Flags().Bool("dry-run", false, "print parsed items without creating them")

	menuCmd.AddCommand(menuListCmd, menuAddCmd, menuDeleteCmd, menuImportCmd)
}

// --- reviews ---

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Read and write reviews (works offline)",
}

var reviewAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a review",
	Long: `Add a review. The review is stored locally first and sent to the
server in the background; it stays visible while the server catches up.

Examples:
  restora review add --item 3f2a --rating 5 --text "Perfect soufflé"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		item, _ := cmd.Flags().GetString("item")
		rating, _ := cmd.Flags().GetInt("rating")
		text, _ := cmd.Flags().GetString("text")
		name, _ := cmd.Flags().GetString("name")

		review := restaurant.Review{ItemID: item, Rating: rating, Text: text, ReviewerName: name}
		if err := restaurant.ValidateReview(review); err != nil {
			return err
		}
		if strings.TrimSpace(review.ReviewerName) == "" {
			review.ReviewerName = restaurant.DefaultReviewerName
		}

		lc, err := newLocalClient()
		if err != nil {
			return err
		}
		defer lc.Close()

		id := uuid.NewString()
		rec, err := reconcile.NewRecord(id, 0, review)
		if err != nil {
			return err
		}
		synced, err := lc.apply(cmd.Context(), reconcile.Reviews, reconcile.Mutation{Kind: reconcile.Create, Record: rec})
		if err != nil {
			return err
		}
		reportApplied(synced, "Added review %s", shortID(id))
		return nil
	},
}

var reviewListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reviews, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		item, _ := cmd.Flags().GetString("item")

		lc, err := newLocalClient()
		if err != nil {
			return err
		}
		defer lc.Close()

		reviews := toReviews(lc.refresh(cmd.Context(), reconcile.Reviews))
		if item != "" {
			reviews = slices.DeleteFunc(reviews, func(v restaurant.Review) bool { return v.ItemID != item })
		}
		slices.SortStableFunc(reviews, func(a, b restaurant.Review) int { return cmp.Compare(b.CreatedAt, a.CreatedAt) })

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, reviews)
		}
		if len(reviews) == 0 {
			fmt.Fprintln(out, "No reviews yet.")
			return nil
		}
		for _, v := range reviews {
			itemName := v.ItemName
			if itemName == "" {
				itemName = shortID(v.ItemID)
			}
			fmt.Fprintf(out, "%s  %s  %s by %s (%s)\n", shortID(v.ID), stars(v.Rating),
				colorize(colorBold, itemName), v.ReviewerName, formatUnix(v.CreatedAt))
			fmt.Fprintf(out, "    %s\n", v.Text)
		}
		return nil
	},
}

var reviewDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a review",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lc, err := newLocalClient()
		if err != nil {
			return err
		}
		defer lc.Close()

		rec, err := lc.find(cmd.Context(), reconcile.Reviews, args[0])
		if err != nil {
			return err
		}
		synced, err := lc.apply(cmd.Context(), reconcile.Reviews, reconcile.Mutation{Kind: reconcile.Delete, ID: rec.ID})
		if err != nil {
			return err
		}
		reportApplied(synced, "Deleted review %s", shortID(rec.ID))
		return nil
	},
}

func init() {
	reviewAddCmd.Flags().String("item", "", "menu item id (required)")
	reviewAddCmd.Flags().Int("rating", 0, "rating from 1 to 5 (required)")
	reviewAddCmd.Flags().String("text", "", "review text (required)")
	reviewAddCmd.Flags().String("name", "", "reviewer name")

	reviewListCmd.Flags().String("item", "", "only reviews of this menu item")

	reviewCmd.AddCommand(reviewAddCmd, reviewListCmd, reviewDeleteCmd)
}

// reportApplied tells the user whether a local change has reached the server.
func reportApplied(synced bool, format string, args ...any) {
	printSuccess(format, args...)
	if !synced {
		printWarning("saved locally; it will be sent when the server is reachable")
	}
}

// --- reservations ---

var reservationCmd = &cobra.Command{
	Use:     "reservation",
	Aliases: []string{"reservations"},
	Short:   "Request and manage table reservations (works offline)",
}

var reservationAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Request a reservation",
	Long: `Request a reservation. New reservations start as pending.

Examples:
  restora reservation add --name Ana --phone 555-0101 --date 2026-05-01 --time 19:30 --guests 4`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		res := restaurant.Reservation{Status: restaurant.StatusPending}
		res.Name, _ = flags.GetString("name")
		res.Phone, _ = flags.GetString("phone")
		res.Email, _ = flags.GetString("email")
		res.Date, _ = flags.GetString("date")
		res.Time, _ = flags.GetString("time")
		res.Guests, _ = flags.GetInt("guests")
		res.Notes, _ = flags.GetString("notes")
		if err := restaurant.ValidateReservation(res); err != nil {
			return err
		}

		lc, err := newLocalClient()
		if err != nil {
			return err
		}
		defer lc.Close()

		id := uuid.NewString()
		rec, err := reconcile.NewRecord(id, 0, res)
		if err != nil {
			return err
		}
		synced, err := lc.apply(cmd.Context(), reconcile.Reservations, reconcile.Mutation{Kind: reconcile.Create, Record: rec})
		if err != nil {
			return err
		}
		reportApplied(synced, "Requested reservation %s for %d on %s at %s", shortID(id), res.Guests, res.Date, res.Time)
		return nil
	},
}

var reservationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reservations, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		date, _ := cmd.Flags().GetString("date")
		if status != "" {
			if err := restaurant.ValidateStatus(status); err != nil {
				return err
			}
		}

		lc, err := newLocalClient()
		if err != nil {
			return err
		}
		defer lc.Close()

		list := toReservations(lc.refresh(cmd.Context(), reconcile.Reservations))
		list = slices.DeleteFunc(list, func(v restaurant.Reservation) bool {
			return (status != "" && v.Status != status) || (date != "" && v.Date != date)
		})
		slices.SortStableFunc(list, func(a, b restaurant.Reservation) int { return cmp.Compare(b.CreatedAt, a.CreatedAt) })

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, list)
		}
		if len(list) == 0 {
			fmt.Fprintln(out, "No reservations.")
			return nil
		}
		tw := newTable(out)
		fmt.Fprintln(tw, "ID\tNAME\tPHONE\tDATE\tTIME\tGUESTS\tSTATUS")
		for _, v := range list {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n", shortID(v.ID), v.Name, v.Phone, v.Date, v.Time, v.Guests, statusLabel(v.Status))
		}
		return tw.Flush()
	},
}

func setReservationStatus(status string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		lc, err := newLocalClient()
		if err != nil {
			return err
		}
		defer lc.Close()

		rec, err := lc.find(cmd.Context(), reconcile.Reservations, args[0])
		if err != nil {
			return err
		}
		synced, err := lc.apply(cmd.Context(), reconcile.Reservations,
			reconcile.Mutation{Kind: reconcile.UpdateStatus, ID: rec.ID, Status: status})
		if err != nil {
			return err
		}
		reportApplied(synced, "Reservation %s is now %s", shortID(rec.ID), status)
		return nil
	}
}

var reservationApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a reservation",
	Args:  cobra.ExactArgs(1),
	RunE:  setReservationStatus(restaurant.StatusApproved),
}

var reservationRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject a reservation",
	Args:  cobra.ExactArgs(1),
	RunE:  setReservationStatus(restaurant.StatusRejected),
}

var reservationDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a reservation, or all of them with --all",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		switch {
		case all && len(args) > 0:
			return fmt.Errorf("pass either an id or --all, not both")
		case !all && len(args) == 0:
			return fmt.Errorf("a reservation id or --all is required")
		}

		if all {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			if err := client.ClearReservations(cmd.Context()); err != nil {
				return err
			}
			printSuccess("Deleted all reservations")
			return nil
		}

		lc, err := newLocalClient()
		if err != nil {
			return err
		}
		defer lc.Close()

		rec, err := lc.find(cmd.Context(), reconcile.Reservations, args[0])
		if err != nil {
			return err
		}
		synced, err := lc.apply(cmd.Context(), reconcile.Reservations, reconcile.Mutation{Kind: reconcile.Delete, ID: rec.ID})
		if err != nil {
			return err
		}
		reportApplied(synced, "Deleted reservation %s", shortID(rec.ID))
		return nil
	},
}

func init() {
	reservationAddCmd.Flags().String("name", "", "guest name (required)")
	reservationAddCmd.Flags().String("phone", "", "contact phone (required)")
	reservationAddCmd.Flags().String("date", "", "date, YYYY-MM-DD (required)")
	reservationAddCmd.Flags().String("time", "", "time, HH:MM (required)")
	reservationAddCmd.Flags().Int("guests", 0, "party size (required)")
	reservationAddCmd.Flags().String("email", "", "email for the confirmation")
	reservationAddCmd.Flags().String("notes", "", "special requests")

	reservationListCmd.Flags().String("status", "", "only pending, approved or rejected")
	reservationListCmd.Flags().String("date", "", "only this date, YYYY-MM-DD")

	reservationDeleteCmd.Flags().Bool("all", false, "delete every reservation on the server")

	reservationCmd.AddCommand(reservationAddCmd, reservationListCmd, reservationApproveCmd,
		reservationRejectCmd, reservationDeleteCmd)
}

// --- orders ---

var orderCmd = &cobra.Command{
	Use:     "order",
	Aliases: []string{"orders"},
	Short:   "Inspect orders",
}

var orderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		status, _ := cmd.Flags().GetString("status")

		client, err := newAPIClient()
		if err != nil {
			return err
		}
		orders, err := client.ListOrders(cmd.Context(), restaurant.OrderFilter{UserID: user, Status: status})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, orders)
		}
		if len(orders) == 0 {
			fmt.Fprintln(out, "No orders.")
			return nil
		}
		tw := newTable(out)
		fmt.Fprintln(tw, "ID\tCREATED\tITEMS\tTOTAL\tSTATUS")
		for _, o := range orders {
			qty := 0
			for _, it := range o.Items {
				qty += it.Qty
			}
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", shortID(o.ID), formatUnix(o.CreatedAt), qty, restaurant.FormatPrice(o.Total), o.Status)
		}
		return tw.Flush()
	},
}

var orderStatusCmd = &cobra.Command{
	Use:   "status <id> <status>",
	Short: "Update an order's status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		o, err := client.UpdateOrderStatus(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), o)
		}
		printSuccess("Order %s is now %s", shortID(o.ID), o.Status)
		return nil
	},
}

func init() {
	orderListCmd.Flags().String("user", "", "only orders of this user id")
	orderListCmd.Flags().String("status", "", "only orders in this status")

	orderCmd.AddCommand(orderListCmd, orderStatusCmd)
}

// --- sales ---

var salesCmd = &cobra.Command{
	Use:   "sales",
	Short: "Show sales, optionally grouped by item or day",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := remote.SalesQuery{}
		q.StartDate, _ = cmd.Flags().GetString("start")
		q.EndDate, _ = cmd.Flags().GetString("end")
		q.GroupBy, _ = cmd.Flags().GetString("group-by")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		tw := newTable(out)
		switch q.GroupBy {
		case "item":
			var rows []restaurant.ItemSummary
			if err := client.Sales(cmd.Context(), q, &rows); err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(out, rows)
			}
			fmt.Fprintln(tw, "ITEM\tQTY\tORDERS\tREVENUE")
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", r.ItemName, r.TotalQuantity, r.OrderCount, restaurant.FormatPrice(r.TotalRevenue))
			}
		case "day":
			var rows []restaurant.DaySummary
			if err := client.Sales(cmd.Context(), q, &rows); err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(out, rows)
			}
			fmt.Fprintln(tw, "DATE\tQTY\tORDERS\tREVENUE")
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", r.Date, r.TotalQuantity, r.OrderCount, restaurant.FormatPrice(r.TotalRevenue))
			}
		case "":
			var rows []restaurant.Sale
			if err := client.Sales(cmd.Context(), q, &rows); err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(out, rows)
			}
			fmt.Fprintln(tw, "CREATED\tORDER\tITEM\tQTY\tTOTAL")
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", formatUnix(r.CreatedAt), shortID(r.OrderID), r.ItemName, r.Quantity, restaurant.FormatPrice(r.Total))
			}
		default:
			return fmt.Errorf("--group-by must be item or day, got %q", q.GroupBy)
		}
		return tw.Flush()
	},
}

func init() {
	salesCmd.Flags().String("start", "", "first day, YYYY-MM-DD")
	salesCmd.Flags().String("end", "", "last day, YYYY-MM-DD (inclusive)")
	salesCmd.Flags().String("group-by", "", "item or day")
}

// --- sync ---

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile cached reviews and reservations with the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		lc, err := newLocalClient()
		if err != nil {
			return err
		}
		defer lc.Close()

		collections := []reconcile.Collection{reconcile.Reviews, reconcile.Reservations}
		changed := make([]bool, len(collections))
		g, ctx := errgroup.WithContext(cmd.Context())
		for i, c := range collections {
			g.Go(func() error {
				ok, err := lc.rec.Reconcile(ctx, c)
				if err != nil {
					return fmt.Errorf("syncing %s: %w", c, err)
				}
				changed[i] = ok
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for i, c := range collections {
			n := len(lc.rec.LocalCache(c))
			if changed[i] {
				printSuccess("%s: %d (updated)", c, n)
			} else {
				printStatus(string(c), "%d (unchanged)", n)
			}
		}
		return nil
	},
}

// --- watch ---

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep reviews and reservations in sync until interrupted",
	Long: `Keep reviews and reservations in sync until interrupted.

The collections are reconciled on a timer. Press Enter to sync right away.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lc, err := newLocalClient()
		if err != nil {
			return err
		}
		defer lc.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		lc.rec.OnChange(func(c reconcile.Collection, records []reconcile.Record) {
			if jsonOutput {
				printJSON(out, map[string]any{"collection": c, "count": len(records)})
				return
			}
			fmt.Fprintf(out, "%s: %d\n", colorize(colorBold, string(c)), len(records))
		})
		lc.rec.SetActive(reconcile.Reviews, true)
		lc.rec.SetActive(reconcile.Reservations, true)

		done := make(chan struct{})
		go func() {
			defer close(done)
			lc.rec.Run(ctx)
		}()

		go func() {
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				lc.rec.Wake()
			}
		}()

		printStep("Watching for changes (Ctrl-C to stop)")
		<-ctx.Done()
		<-done
		return nil
	},
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		keys := config.ShowAll(cfg)
		out := cmd.OutOrStdout()
		if jsonOutput {
			m := make(map[string]string, len(keys))
			for _, k := range keys {
				m[k.Key] = k.Value
			}
			return printJSON(out, m)
		}
		for _, k := range keys {
			fmt.Fprintf(out, "  %s = %s\n", colorize(colorBold, k.Key), k.Value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(key, value); err != nil {
			return err
		}

		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Restore a configuration value to its default",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.UnsetKey(args[0]); err != nil {
			return err
		}
		printSuccess("Unset %s", args[0])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd, configUnsetCmd)
}
