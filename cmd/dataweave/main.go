package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dataweave/dataweave/internal/catalog"
	"github.com/dataweave/dataweave/internal/config"
	"github.com/dataweave/dataweave/internal/domain/schema"
	"github.com/dataweave/dataweave/internal/domain/view"
	"github.com/dataweave/dataweave/internal/engine"
	"github.com/dataweave/dataweave/internal/logging"
	"github.com/dataweave/dataweave/internal/storage"
	"github.com/dataweave/dataweave/internal/storage/jsonstore"
	"github.com/dataweave/dataweave/internal/storage/sqlitestore"
)

var (
	cfg     *config.Config
	cat     *catalog.Catalog
	store   storage.Store
	cleanup func()

	tableDescription string
	fieldType        string
	fieldRequired    bool
	fieldDefault     string
	setValues        []string
	viewName         string
	searchQuery      string
	sortDescending   bool
)

var rootCmd = &cobra.Command{
	Use:   "dataweave",
	Short: "Manage dynamic-schema tables, records and saved views",
	Long: `DataWeave stores user-defined tables whose fields can be added, removed and
reordered at runtime. Records hold raw string values; saved views filter,
search and sort them without touching the stored data.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if cleanup != nil {
			cleanup()
		}
	},
}

func setup(cmd *cobra.Command, args []string) error {
	cfg = config.Load()

	logger, closeLogger := logging.SetupLogger(cfg.SeqURL, cfg.LogLevel)
	slog.SetDefault(logger)

	var err error
	store, err = openStore(cfg)
	if err != nil {
		closeLogger()
		return err
	}

	cat, err = store.Load()
	if err != nil {
		closeLogger()
		return err
	}
	cat.AddObserver(catalog.NewLoggingObserver())

	cleanup = func() {
		if closer, ok := store.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
		closeLogger()
	}
	return nil
}

func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageEngine {
	case config.EngineSQLite:
		return sqlitestore.Open(cfg.SQLitePath)
	case config.EngineJSON:
		return jsonstore.New(cfg.DataDir), nil
	default:
		return nil, fmt.Errorf("unknown storage engine %q (must be %q or %q)",
			cfg.StorageEngine, config.EngineJSON, config.EngineSQLite)
	}
}

func save() error {
	if err := store.Save(cat); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}

func resolveTable(name string) (*schema.Table, error) {
	t, ok := cat.TableByName(name)
	if !ok {
		return nil, fmt.Errorf("no table named %q", name)
	}
	return t, nil
}

func resolveField(t *schema.Table, name string) (*schema.Field, error) {
	f, ok := t.FieldByName(name)
	if !ok {
		return nil, fmt.Errorf("no field named %q in table %q", name, t.Name)
	}
	return f, nil
}

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Manage tables",
}

var tableCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t := cat.CreateTable(args[0], tableDescription)
		if err := save(); err != nil {
			return err
		}
		fmt.Printf("created table %s (%s)\n", t.Name, t.ID)
		return nil
	},
}

var tableListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tFIELDS\tRECORDS\tVIEWS")
		for _, t := range cat.Tables {
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\n",
				t.Name, len(t.Fields), len(t.Records), len(cat.ViewsFor(t.ID)))
		}
		return w.Flush()
	},
}

var tableDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a table and everything in it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := resolveTable(args[0])
		if err != nil {
			return err
		}
		if err := cat.DeleteTable(t.ID); err != nil {
			return err
		}
		return save()
	},
}

var fieldCmd = &cobra.Command{
	Use:   "field",
	Short: "Manage a table's fields",
}

var fieldAddCmd = &cobra.Command{
	Use:   "add <table> <name>",
	Short: "Add a field to a table",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := resolveTable(args[0])
		if err != nil {
			return err
		}
		ft := schema.FieldType(fieldType)
		if !ft.Valid() {
			return fmt.Errorf("unknown field type %q", fieldType)
		}
		if _, err := cat.AddField(t.ID, args[1], ft, fieldRequired, fieldDefault); err != nil {
			return err
		}
		return save()
	},
}

var fieldListCmd = &cobra.Command{
	Use:   "list <table>",
	Short: "List a table's fields in display order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := resolveTable(args[0])
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tTYPE\tREQUIRED\tDEFAULT\tFILLED")
		for _, f := range t.FieldsInOrder() {
			fmt.Fprintf(w, "%s\t%s\t%v\t%s\t%d\n",
				f.Name, f.Type, f.IsRequired, f.DefaultValue, t.FilledCount(f))
		}
		return w.Flush()
	},
}

var fieldReorderCmd = &cobra.Command{
	Use:   "reorder <table> <name>...",
	Short: "Reorder a table's fields; every field must be listed exactly once",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := resolveTable(args[0])
		if err != nil {
			return err
		}
		ids := make([]string, 0, len(args)-1)
		for _, name := range args[1:] {
			f, err := resolveField(t, name)
			if err != nil {
				return err
			}
			ids = append(ids, f.ID)
		}
		if err := cat.ReorderFields(t.ID, ids); err != nil {
			return err
		}
		return save()
	},
}

var fieldRetypeCmd = &cobra.Command{
	Use:   "retype <table> <name> <type>",
	Short: "Change a field's type; refused while any record holds data for it",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := resolveTable(args[0])
		if err != nil {
			return err
		}
		f, err := resolveField(t, args[1])
		if err != nil {
			return err
		}
		if err := cat.ChangeFieldType(t.ID, f.ID, schema.FieldType(args[2])); err != nil {
			return err
		}
		return save()
	},
}

var fieldDeleteCmd = &cobra.Command{
	Use:   "delete <table> <name>",
	Short: "Delete a field; refused while any record holds data for it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := resolveTable(args[0])
		if err != nil {
			return err
		}
		f, err := resolveField(t, args[1])
		if err != nil {
			return err
		}
		if err := cat.DeleteField(t.ID, f.ID); err != nil {
			return err
		}
		return save()
	},
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Manage a table's records",
}

var recordAddCmd = &cobra.Command{
	Use:   "add <table>",
	Short: "Add a record, optionally setting values with --set Field=value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := resolveTable(args[0])
		if err != nil {
			return err
		}
		r, err := cat.CreateRecord(t.ID)
		if err != nil {
			return err
		}
		for _, pair := range setValues {
			name, value, ok := strings.Cut(pair, "=")
			if !ok {
				return fmt.Errorf("invalid --set %q, expected Field=value", pair)
			}
			f, err := resolveField(t, name)
			if err != nil {
				return err
			}
			if err := cat.SetValue(t.ID, r.ID, f.ID, value); err != nil {
				return err
			}
		}
		if err := save(); err != nil {
			return err
		}
		fmt.Printf("created record %s\n", r.ID)
		return nil
	},
}

var recordSetCmd = &cobra.Command{
	Use:   "set <table> <record-id> <field> <value>",
	Short: "Set one value on a record",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := resolveTable(args[0])
		if err != nil {
			return err
		}
		f, err := resolveField(t, args[2])
		if err != nil {
			return err
		}
		if err := cat.SetValue(t.ID, args[1], f.ID, args[3]); err != nil {
			return err
		}
		return save()
	},
}

var recordListCmd = &cobra.Command{
	Use:   "list <table>",
	Short: "List records, optionally through a saved view and a search query",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := resolveTable(args[0])
		if err != nil {
			return err
		}

		var v *view.TableView
		if viewName != "" {
			var ok bool
			v, ok = cat.ViewByName(t.ID, viewName)
			if !ok {
				return fmt.Errorf("no view named %q for table %q", viewName, t.Name)
			}
		}

		records := engine.Evaluate(t.Records, v, searchQuery, t.Fields)
		visible := engine.VisibleFields(t.Fields, v)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		header := make([]string, 0, len(visible)+1)
		header = append(header, "ID")
		for _, f := range visible {
			header = append(header, strings.ToUpper(f.Name))
		}
		fmt.Fprintln(w, strings.Join(header, "\t"))

		for _, r := range records {
			row := make([]string, 0, len(visible)+1)
			row = append(row, shortID(r.ID))
			for _, f := range visible {
				row = append(row, r.GetValue(f.ID))
			}
			fmt.Fprintln(w, strings.Join(row, "\t"))
		}
		return w.Flush()
	},
}

var recordDeleteCmd = &cobra.Command{
	Use:   "delete <table> <record-id>",
	Short: "Delete a record",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := resolveTable(args[0])
		if err != nil {
			return err
		}
		if err := cat.DeleteRecord(t.ID, args[1]); err != nil {
			return err
		}
		return save()
	},
}

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Manage a table's saved views",
}

var viewCreateCmd = &cobra.Command{
	Use:   "create <table> <name>",
	Short: "Create a saved view",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := resolveTable(args[0])
		if err != nil {
			return err
		}
		if _, err := cat.CreateView(t.ID, args[1]); err != nil {
			return err
		}
		return save()
	},
}

var viewListCmd = &cobra.Command{
	Use:   "list <table>",
	Short: "List a table's saved views",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := resolveTable(args[0])
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tFILTERS\tSORTS\tHIDDEN")
		for _, v := range cat.ViewsFor(t.ID) {
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\n",
				v.Name, len(v.Filters), len(v.SortOrders), len(v.HiddenFields))
		}
		return w.Flush()
	},
}

var viewFilterAddCmd = &cobra.Command{
	Use:   "filter-add <table> <view> <field> <operation> [value]",
	Short: "Add a filter to a saved view",
	Long: `Add a filter predicate to a saved view. The field may be a field name or
one of the system tokens "creation_date" and "modified_date". Supported
operations: ` + operationList() + `.`,
	Args: cobra.RangeArgs(4, 5),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := resolveTable(args[0])
		if err != nil {
			return err
		}
		v, ok := cat.ViewByName(t.ID, args[1])
		if !ok {
			return fmt.Errorf("no view named %q for table %q", args[1], t.Name)
		}
		fieldID, err := resolveFieldToken(t, args[2])
		if err != nil {
			return err
		}
		op := view.FilterOperation(args[3])
		if !op.Valid() {
			return fmt.Errorf("unknown operation %q (supported: %s)", args[3], operationList())
		}
		value := ""
		if len(args) == 5 {
			value = args[4]
		}
		v.AddFilter(fieldID, op, value)
		return save()
	},
}

var viewSortAddCmd = &cobra.Command{
	Use:   "sort-add <table> <view> <field>",
	Short: "Add a sort key to a saved view",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := resolveTable(args[0])
		if err != nil {
			return err
		}
		v, ok := cat.ViewByName(t.ID, args[1])
		if !ok {
			return fmt.Errorf("no view named %q for table %q", args[1], t.Name)
		}
		fieldID, err := resolveFieldToken(t, args[2])
		if err != nil {
			return err
		}
		v.AddSort(fieldID, !sortDescending)
		return save()
	},
}

var viewHideCmd = &cobra.Command{
	Use:   "hide <table> <view> [field]...",
	Short: "Replace a view's hidden-field set; no fields unhides everything",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := resolveTable(args[0])
		if err != nil {
			return err
		}
		v, ok := cat.ViewByName(t.ID, args[1])
		if !ok {
			return fmt.Errorf("no view named %q for table %q", args[1], t.Name)
		}
		ids := make([]string, 0, len(args)-2)
		for _, name := range args[2:] {
			f, err := resolveField(t, name)
			if err != nil {
				return err
			}
			ids = append(ids, f.ID)
		}
		v.SetHiddenFields(ids)
		return save()
	},
}

var viewDeleteCmd = &cobra.Command{
	Use:   "delete <table> <view>",
	Short: "Delete a saved view; the table and its records are untouched",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := resolveTable(args[0])
		if err != nil {
			return err
		}
		v, ok := cat.ViewByName(t.ID, args[1])
		if !ok {
			return fmt.Errorf("no view named %q for table %q", args[1], t.Name)
		}
		if err := cat.DeleteView(t.ID, v.ID); err != nil {
			return err
		}
		return save()
	},
}

// resolveFieldToken accepts a field name or a reserved system token.
func resolveFieldToken(t *schema.Table, name string) (string, error) {
	if engine.IsSystemField(name) {
		return name, nil
	}
	f, err := resolveField(t, name)
	if err != nil {
		return "", err
	}
	return f.ID, nil
}

func operationList() string {
	names := make([]string, len(view.FilterOperations))
	for i, op := range view.FilterOperations {
		names[i] = string(op)
	}
	return strings.Join(names, ", ")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	tableCreateCmd.Flags().StringVarP(&tableDescription, "description", "d", "", "Table description")
	tableCmd.AddCommand(tableCreateCmd, tableListCmd, tableDeleteCmd)

	fieldAddCmd.Flags().StringVarP(&fieldType, "type", "t", string(schema.FieldTypeText), "Field type")
	fieldAddCmd.Flags().BoolVarP(&fieldRequired, "required", "r", false, "Require a value for valid records")
	fieldAddCmd.Flags().StringVar(&fieldDefault, "default", "", "Default value seeded into new records")
	fieldCmd.AddCommand(fieldAddCmd, fieldListCmd, fieldReorderCmd, fieldRetypeCmd, fieldDeleteCmd)

	recordAddCmd.Flags().StringArrayVar(&setValues, "set", nil, "Field=value pair (repeatable)")
	recordListCmd.Flags().StringVarP(&viewName, "view", "v", "", "Evaluate through a saved view")
	recordListCmd.Flags().StringVarP(&searchQuery, "search", "s", "", "Case-insensitive search across all values")
	recordCmd.AddCommand(recordAddCmd, recordSetCmd, recordListCmd, recordDeleteCmd)

	viewSortAddCmd.Flags().BoolVar(&sortDescending, "desc", false, "Sort descending")
	viewCmd.AddCommand(viewCreateCmd, viewListCmd, viewFilterAddCmd, viewSortAddCmd, viewHideCmd, viewDeleteCmd)

	rootCmd.AddCommand(tableCmd, fieldCmd, recordCmd, viewCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
