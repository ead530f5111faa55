// Package catalog owns the live object graph: every user-defined table with
// its fields and records, plus the saved views and explorer configs scoped
// to each table. One catalog, one writer; all mutations are synchronous and
// either succeed immediately or fail with a typed error.
package catalog

import (
	"time"

	"github.com/dataweave/dataweave/internal/domain/data"
	"github.com/dataweave/dataweave/internal/domain/errors"
	"github.com/dataweave/dataweave/internal/domain/schema"
	"github.com/dataweave/dataweave/internal/domain/view"
)

// Catalog is the root of the data model.
type Catalog struct {
	Tables    []*schema.Table
	Views     map[string][]*view.TableView    // keyed by table id
	Explorers map[string][]*view.ExplorerView // keyed by table id

	observers []Observer
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		Tables:    []*schema.Table{},
		Views:     make(map[string][]*view.TableView),
		Explorers: make(map[string][]*view.ExplorerView),
	}
}

// AddObserver registers an observer for mutation events.
func (c *Catalog) AddObserver(observer Observer) {
	c.observers = append(c.observers, observer)
}

// RemoveObserver unregisters an observer.
func (c *Catalog) RemoveObserver(observer Observer) {
	for i, o := range c.observers {
		if o == observer {
			c.observers = append(c.observers[:i], c.observers[i+1:]...)
			return
		}
	}
}

func (c *Catalog) notify(event Event) {
	event.Timestamp = time.Now()
	for _, observer := range c.observers {
		observer.OnEvent(event)
	}
}

// CreateTable adds an empty table to the catalog.
func (c *Catalog) CreateTable(name, description string) *schema.Table {
	t := schema.NewTable(name, description)
	c.Tables = append(c.Tables, t)
	c.notify(Event{Type: EventTableCreated, EntityID: t.ID, Data: name})
	return t
}

// TableByID resolves a table id.
func (c *Catalog) TableByID(id string) (*schema.Table, bool) {
	for _, t := range c.Tables {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// TableByName returns the first table with the given name.
func (c *Catalog) TableByName(name string) (*schema.Table, bool) {
	for _, t := range c.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// RenameTable updates a table's name and description.
func (c *Catalog) RenameTable(id, name, description string) error {
	t, ok := c.TableByID(id)
	if !ok {
		return errors.NewInvalidArgument(id, "unknown table id")
	}
	t.Name = name
	t.Description = description
	t.Touch()
	c.notify(Event{Type: EventTableUpdated, EntityID: t.ID, Data: name})
	return nil
}

// DeleteTable removes the table and cascades to its fields, records, views,
// and explorer configs. The cascade is explicit; nothing else keeps records
// alive once their table is gone.
func (c *Catalog) DeleteTable(id string) error {
	for i, t := range c.Tables {
		if t.ID == id {
			c.Tables = append(c.Tables[:i], c.Tables[i+1:]...)
			delete(c.Views, id)
			delete(c.Explorers, id)
			c.notify(Event{Type: EventTableDeleted, EntityID: id, Data: t.Name})
			return nil
		}
	}
	return errors.NewInvalidArgument(id, "unknown table id")
}

// AddField appends a field to the table's schema.
func (c *Catalog) AddField(tableID, name string, ft schema.FieldType, required bool, defaultValue string) (*schema.Field, error) {
	t, ok := c.TableByID(tableID)
	if !ok {
		return nil, errors.NewInvalidArgument(tableID, "unknown table id")
	}
	f := t.AddField(name, ft, required, defaultValue)
	c.notify(Event{Type: EventFieldAdded, TableID: tableID, EntityID: f.ID, Data: name})
	return f, nil
}

// DeleteField removes a field, refusing while records hold data for it.
func (c *Catalog) DeleteField(tableID, fieldID string) error {
	t, f, err := c.resolveField(tableID, fieldID)
	if err != nil {
		return err
	}
	if err := t.DeleteField(f); err != nil {
		return err
	}
	c.notify(Event{Type: EventFieldDeleted, TableID: tableID, EntityID: fieldID, Data: f.Name})
	return nil
}

// ChangeFieldType relabels a field's type, refusing while records hold data
// for it.
func (c *Catalog) ChangeFieldType(tableID, fieldID string, newType schema.FieldType) error {
	t, f, err := c.resolveField(tableID, fieldID)
	if err != nil {
		return err
	}
	if err := t.ChangeFieldType(f, newType); err != nil {
		return err
	}
	c.notify(Event{Type: EventFieldUpdated, TableID: tableID, EntityID: fieldID, Data: string(newType)})
	return nil
}

// ReorderFields reassigns field positions to match order.
func (c *Catalog) ReorderFields(tableID string, order []string) error {
	t, ok := c.TableByID(tableID)
	if !ok {
		return errors.NewInvalidArgument(tableID, "unknown table id")
	}
	if err := t.ReorderFields(order); err != nil {
		return err
	}
	c.notify(Event{Type: EventFieldUpdated, TableID: tableID, Data: "reorder"})
	return nil
}

// CreateRecord appends an empty record (seeded with field defaults).
func (c *Catalog) CreateRecord(tableID string) (*data.Record, error) {
	t, ok := c.TableByID(tableID)
	if !ok {
		return nil, errors.NewInvalidArgument(tableID, "unknown table id")
	}
	r := t.CreateRecord()
	c.notify(Event{Type: EventRecordCreated, TableID: tableID, EntityID: r.ID})
	return r, nil
}

// SetValue stores a raw value on a record.
func (c *Catalog) SetValue(tableID, recordID, fieldID, raw string) error {
	t, f, err := c.resolveField(tableID, fieldID)
	if err != nil {
		return err
	}
	r, ok := t.RecordByID(recordID)
	if !ok {
		return errors.NewInvalidArgument(t.Name, "unknown record id: "+recordID)
	}
	t.SetValue(r, f, raw)
	c.notify(Event{Type: EventRecordUpdated, TableID: tableID, EntityID: recordID, Data: f.Name})
	return nil
}

// DeleteRecord removes a record from its table. No cascading side effects.
func (c *Catalog) DeleteRecord(tableID, recordID string) error {
	t, ok := c.TableByID(tableID)
	if !ok {
		return errors.NewInvalidArgument(tableID, "unknown table id")
	}
	if !t.DeleteRecord(recordID) {
		return errors.NewInvalidArgument(t.Name, "unknown record id: "+recordID)
	}
	c.notify(Event{Type: EventRecordDeleted, TableID: tableID, EntityID: recordID})
	return nil
}

// CreateView adds a saved view for the table, ordered after the existing
// ones.
func (c *Catalog) CreateView(tableID, name string) (*view.TableView, error) {
	if _, ok := c.TableByID(tableID); !ok {
		return nil, errors.NewInvalidArgument(tableID, "unknown table id")
	}
	v := view.NewTableView(name, len(c.Views[tableID]))
	c.Views[tableID] = append(c.Views[tableID], v)
	c.notify(Event{Type: EventViewCreated, TableID: tableID, EntityID: v.ID, Data: name})
	return v, nil
}

// ViewsFor returns the table's saved views in sort order. A table may have
// none, in which case callers show the unfiltered record list.
func (c *Catalog) ViewsFor(tableID string) []*view.TableView {
	return c.Views[tableID]
}

// ViewByName returns the first view with the given name for the table.
func (c *Catalog) ViewByName(tableID, name string) (*view.TableView, bool) {
	for _, v := range c.Views[tableID] {
		if v.Name == name {
			return v, true
		}
	}
	return nil, false
}

// DeleteView removes a saved view. Views are deleted independently of their
// table.
func (c *Catalog) DeleteView(tableID, viewID string) error {
	views := c.Views[tableID]
	for i, v := range views {
		if v.ID == viewID {
			c.Views[tableID] = append(views[:i], views[i+1:]...)
			c.notify(Event{Type: EventViewDeleted, TableID: tableID, EntityID: viewID, Data: v.Name})
			return nil
		}
	}
	return errors.NewInvalidArgument(tableID, "unknown view id: "+viewID)
}

// CreateExplorer adds an explorer config for the table.
func (c *Catalog) CreateExplorer(tableID, name string) (*view.ExplorerView, error) {
	if _, ok := c.TableByID(tableID); !ok {
		return nil, errors.NewInvalidArgument(tableID, "unknown table id")
	}
	e := view.NewExplorerView(tableID, name)
	e.SortIndex = len(c.Explorers[tableID])
	c.Explorers[tableID] = append(c.Explorers[tableID], e)
	c.notify(Event{Type: EventViewCreated, TableID: tableID, EntityID: e.ID, Data: name})
	return e, nil
}

// ExplorersFor returns the table's explorer configs in sort order.
func (c *Catalog) ExplorersFor(tableID string) []*view.ExplorerView {
	return c.Explorers[tableID]
}

// DeleteExplorer removes an explorer config.
func (c *Catalog) DeleteExplorer(tableID, explorerID string) error {
	configs := c.Explorers[tableID]
	for i, e := range configs {
		if e.ID == explorerID {
			c.Explorers[tableID] = append(configs[:i], configs[i+1:]...)
			c.notify(Event{Type: EventViewDeleted, TableID: tableID, EntityID: explorerID, Data: e.Name})
			return nil
		}
	}
	return errors.NewInvalidArgument(tableID, "unknown explorer id: "+explorerID)
}

func (c *Catalog) resolveField(tableID, fieldID string) (*schema.Table, *schema.Field, error) {
	t, ok := c.TableByID(tableID)
	if !ok {
		return nil, nil, errors.NewInvalidArgument(tableID, "unknown table id")
	}
	f, ok := t.FieldByID(fieldID)
	if !ok {
		return nil, nil, errors.NewInvalidArgument(t.Name, "unknown field id: "+fieldID)
	}
	return t, f, nil
}
