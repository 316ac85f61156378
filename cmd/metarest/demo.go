package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gimlet2/metarest/adapters/idgen"
	"github.com/gimlet2/metarest/adapters/memory"
	"github.com/gimlet2/metarest/app"
	"github.com/gimlet2/metarest/core/resource"
	"github.com/gimlet2/metarest/core/schema"
	"github.com/gimlet2/metarest/core/value"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a CRUD walkthrough against an in-memory engine",
	Long: `Run a self-contained walkthrough: define a "users" resource,
create records, read, filter, update, delete, and show a validation
failure. Nothing is persisted.`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger().Level(zerolog.WarnLevel)
	ctx := context.Background()

	def := demoDefinition()

	fmt.Println("Resource definition:")
	printJSON(def)

	mgr := app.NewManager(def, memory.NewEngine(), logger).
		GenerateIDs(idgen.NewSequential(""))

	fmt.Println("\nCreating users...")
	seed := []resource.Record{
		demoUser("", "Alice Johnson", 28, "alice@example.com"),
		demoUser("", "Bob Smith", 35, "bob@example.com"),
		demoUser("", "Charlie Brown", 42, "charlie@example.com"),
	}
	for _, rec := range seed {
		created, err := mgr.Create(ctx, rec)
		if err != nil {
			return err
		}
		fmt.Printf("  created id %s\n", created.ID)
	}

	fmt.Println("\nGetting user '1':")
	got, err := mgr.Get(ctx, "1")
	if err != nil {
		return err
	}
	printJSON(got)

	all, err := mgr.List(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("\nListed %d users\n", len(all))

	fmt.Println("\nUsers with age > 30:")
	filtered, err := mgr.ListFiltered(ctx, []resource.Filter{
		{Field: "age", Operator: resource.OpGt, Value: value.Number(30)},
	})
	if err != nil {
		return err
	}
	for _, rec := range filtered {
		name, _ := rec.Data["name"].AsString()
		age, _ := rec.Data["age"].AsNumber()
		fmt.Printf("  - %s (age %v)\n", name, age)
	}

	fmt.Println("\nUpdating user '1'...")
	if _, err := mgr.Update(ctx, "1", demoUser("1", "Alice Johnson-Smith", 29, "alice.smith@example.com")); err != nil {
		return err
	}
	updated, err := mgr.Get(ctx, "1")
	if err != nil {
		return err
	}
	printJSON(updated)

	fmt.Println("\nDeleting user '3'...")
	if err := mgr.Delete(ctx, "3"); err != nil {
		return err
	}
	remaining, err := mgr.List(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Remaining users: %d\n", len(remaining))

	fmt.Println("\nCreating an invalid user (name too short, age too high):")
	if _, err := mgr.Create(ctx, demoUser("4", "Jo", 200, "jo@example.com")); err != nil {
		fmt.Printf("Rejected as expected: %v\n", err)
	} else {
		return fmt.Errorf("invalid record was unexpectedly accepted")
	}

	return nil
}

func demoDefinition() schema.ResourceDefinition {
	bound := func(v float64) *float64 { return &v }

	return schema.ResourceDefinition{
		Name: "users",
		Fields: []schema.Field{
			{
				Name: "name", Type: schema.TypeString, Required: true,
				Validation: &schema.ValidationRule{Min: bound(3), Max: bound(50)},
			},
			{
				Name: "age", Type: schema.TypeNumber,
				Validation: &schema.ValidationRule{Min: bound(0), Max: bound(150)},
			},
			{Name: "email", Type: schema.TypeString, Required: true},
		},
		Security: &schema.SecurityPolicy{
			RequireAuth:  true,
			AllowedRoles: []string{"admin", "user"},
		},
	}
}

func demoUser(id, name string, age float64, email string) resource.Record {
	return resource.New(id).
		With("name", value.String(name)).
		With("age", value.Number(age)).
		With("email", value.String(email))
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("(marshal error: %v)\n", err)
		return
	}
	fmt.Println(string(data))
}
