package store

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"shopmate/internal/catalog"
	"shopmate/internal/category"
	"shopmate/internal/consolidate"
	"shopmate/internal/meal"
	"shopmate/internal/shopping"
	"shopmate/internal/textutil"
)

// Collection keys, one per independently persisted document.
const (
	KeyMeals         = "meals"
	KeySelectedMeals = "selectedMeals"
	KeyShoppingList  = "shoppingList"
	KeyQuickAdds     = "categories"
	KeyMappings      = "ingredientMappings"
	KeyProducts      = "masterProductList"
	KeyAisles        = "aisles"
	KeyUsage         = "itemUsageCount"
)

// AllKeys lists every persisted collection.
var AllKeys = []string{
	KeyMeals, KeySelectedMeals, KeyShoppingList, KeyQuickAdds,
	KeyMappings, KeyProducts, KeyAisles, KeyUsage,
}

// Persister receives collection snapshots after each mutation. Writes are
// best-effort: the store logs failures and keeps its in-memory state
// authoritative, it never rolls back.
type Persister interface {
	SaveCollection(key string, data []byte) error
}

// Store owns the core collections and every mutation on them. It is not safe
// for concurrent mutation: the application is event-driven and each operation
// runs to completion before the next is accepted.
type Store struct {
	meals     []meal.Meal
	selected  []string
	list      []shopping.Item
	quickAdds []shopping.QuickAddGroup
	mappings  category.Mappings
	products  []catalog.Product
	aisles    []string
	usage     map[string]int

	persisters []Persister
	onChange   func(key string)

	now   func() time.Time
	newID func() string
}

// Option configures a Store at construction.
type Option func(*Store)

// WithPersister adds a persistence sink for collection snapshots.
func WithPersister(p Persister) Option {
	return func(s *Store) { s.persisters = append(s.persisters, p) }
}

// WithOnChange registers a hook invoked with the collection key after every
// committed mutation or applied remote update. The UI re-renders from it.
func WithOnChange(fn func(key string)) Option {
	return func(s *Store) { s.onChange = fn }
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides uuid generation, for tests.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// New returns an empty Store seeded with the default quick-add groups and
// aisle order.
func New(opts ...Option) *Store {
	s := &Store{
		quickAdds: shopping.DefaultQuickAddGroups(),
		aisles:    catalog.DefaultAisles(),
		usage:     make(map[string]int),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// persist snapshots a collection and hands it to every persister. Failures
// are logged; in-memory state stays authoritative.
func (s *Store) persist(key string) {
	data, err := s.Snapshot(key)
	if err != nil {
		log.Printf("failed to snapshot %s: %v", key, err)
		return
	}
	for _, p := range s.persisters {
		if err := p.SaveCollection(key, data); err != nil {
			log.Printf("failed to persist %s: %v", key, err)
		}
	}
	if s.onChange != nil {
		s.onChange(key)
	}
}

// Snapshot marshals one collection to its persisted JSON form.
func (s *Store) Snapshot(key string) ([]byte, error) {
	v, err := s.collection(key)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

func (s *Store) collection(key string) (any, error) {
	switch key {
	case KeyMeals:
		return s.meals, nil
	case KeySelectedMeals:
		return s.selected, nil
	case KeyShoppingList:
		return s.list, nil
	case KeyQuickAdds:
		return s.quickAdds, nil
	case KeyMappings:
		return s.mappings, nil
	case KeyProducts:
		return s.products, nil
	case KeyAisles:
		return s.aisles, nil
	case KeyUsage:
		return s.usage, nil
	default:
		return nil, fmt.Errorf("unknown collection %q", key)
	}
}

// Load replaces one collection from its persisted JSON form. Used at startup
// and by remote sync; remote updates replace collections wholesale (last
// writer wins) with no field-level merging.
func (s *Store) Load(key string, data []byte) error {
	var err error
	switch key {
	case KeyMeals:
		err = json.Unmarshal(data, &s.meals)
	case KeySelectedMeals:
		err = json.Unmarshal(data, &s.selected)
	case KeyShoppingList:
		err = json.Unmarshal(data, &s.list)
	case KeyQuickAdds:
		err = json.Unmarshal(data, &s.quickAdds)
	case KeyMappings:
		err = json.Unmarshal(data, &s.mappings)
	case KeyProducts:
		err = json.Unmarshal(data, &s.products)
	case KeyAisles:
		err = json.Unmarshal(data, &s.aisles)
	case KeyUsage:
		err = json.Unmarshal(data, &s.usage)
	default:
		return fmt.Errorf("unknown collection %q", key)
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", key, err)
	}
	if s.usage == nil {
		s.usage = make(map[string]int)
	}
	return nil
}

// ApplyRemote is Load plus the on-change notification, for updates pushed by
// the sync listener.
func (s *Store) ApplyRemote(key string, data []byte) error {
	if err := s.Load(key, data); err != nil {
		return err
	}
	if s.onChange != nil {
		s.onChange(key)
	}
	return nil
}

// --- Meals -----------------------------------------------------------------

// Meals returns the meals in display order.
func (s *Store) Meals() []meal.Meal {
	return meal.Sorted(s.meals)
}

// MealFields is an explicit partial update for a meal. Nil fields are left
// unchanged.
type MealFields struct {
	Name        *string
	Ingredients []string
}

// AddMeal validates and appends a new meal at the end of the display order.
func (s *Store) AddMeal(name string, ingredients []string) (meal.Meal, error) {
	name = strings.TrimSpace(name)
	ingredients = nonEmptyLines(ingredients)
	if name == "" || len(ingredients) == 0 {
		return meal.Meal{}, fmt.Errorf("meal needs a name and at least one ingredient: %w", ErrEmptyField)
	}

	maxOrder := -1
	for _, m := range s.meals {
		if m.SortOrder > maxOrder {
			maxOrder = m.SortOrder
		}
	}
	m := meal.Meal{
		ID:          s.newID(),
		Name:        name,
		Ingredients: ingredients,
		SortOrder:   maxOrder + 1,
	}
	s.meals = append(s.meals, m)
	s.persist(KeyMeals)
	return m, nil
}

// UpdateMeal applies an explicit field-level update to a meal.
func (s *Store) UpdateMeal(id string, fields MealFields) error {
	m := meal.ByID(s.meals, id)
	if m == nil {
		return fmt.Errorf("meal %s: %w", id, ErrNotFound)
	}
	if fields.Name != nil {
		name := strings.TrimSpace(*fields.Name)
		if name == "" {
			return fmt.Errorf("meal name: %w", ErrEmptyField)
		}
		m.Name = name
	}
	if fields.Ingredients != nil {
		ingredients := nonEmptyLines(fields.Ingredients)
		if len(ingredients) == 0 {
			return fmt.Errorf("meal ingredients: %w", ErrEmptyField)
		}
		m.Ingredients = ingredients
	}
	s.persist(KeyMeals)
	return nil
}

// DeleteMeal removes a meal, drops it from the selection set and reconciles
// the shopping list.
func (s *Store) DeleteMeal(id string) error {
	if meal.ByID(s.meals, id) == nil {
		return fmt.Errorf("meal %s: %w", id, ErrNotFound)
	}
	kept := s.meals[:0]
	for _, m := range s.meals {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	s.meals = kept

	selected := s.selected[:0]
	for _, sid := range s.selected {
		if sid != id {
			selected = append(selected, sid)
		}
	}
	s.selected = selected

	s.persist(KeyMeals)
	s.persist(KeySelectedMeals)
	s.RecomputeList()
	return nil
}

// ReorderMeal moves the meal at position from (in the sorted view) to
// position to and reassigns dense sort orders.
func (s *Store) ReorderMeal(from, to int) error {
	sorted := meal.Sorted(s.meals)
	if from < 0 || from >= len(sorted) || to < 0 || to >= len(sorted) {
		return fmt.Errorf("reorder position out of range: %w", ErrNotFound)
	}
	m := sorted[from]
	sorted = append(sorted[:from], sorted[from+1:]...)
	sorted = append(sorted[:to], append([]meal.Meal{m}, sorted[to:]...)...)
	for i := range sorted {
		sorted[i].SortOrder = i
	}
	s.meals = sorted
	s.persist(KeyMeals)
	return nil
}

// SortMealsAlphabetically orders the database case-insensitively by name.
func (s *Store) SortMealsAlphabetically() {
	s.meals = meal.Sorted(s.meals)
	meal.SortAlphabetically(s.meals)
	s.persist(KeyMeals)
}

// --- Selection ---------------------------------------------------------------

// SelectedMealIDs returns the current selection in toggle order.
func (s *Store) SelectedMealIDs() []string {
	out := make([]string, len(s.selected))
	copy(out, s.selected)
	return out
}

// IsSelected reports whether a meal id is in the selection set.
func (s *Store) IsSelected(id string) bool {
	for _, sid := range s.selected {
		if sid == id {
			return true
		}
	}
	return false
}

// ToggleMealSelection flips a meal's membership in the selection set and
// reconciles the shopping list.
func (s *Store) ToggleMealSelection(id string) error {
	if meal.ByID(s.meals, id) == nil {
		return fmt.Errorf("meal %s: %w", id, ErrNotFound)
	}
	for i, sid := range s.selected {
		if sid == id {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			s.persist(KeySelectedMeals)
			s.RecomputeList()
			return nil
		}
	}
	s.selected = append(s.selected, id)
	s.persist(KeySelectedMeals)
	s.RecomputeList()
	return nil
}

// ClearSelectedMeals empties the selection set and reconciles.
func (s *Store) ClearSelectedMeals() {
	s.selected = nil
	s.persist(KeySelectedMeals)
	s.RecomputeList()
}

// --- Shopping list -----------------------------------------------------------

// List returns a copy of the current shopping list.
func (s *Store) List() []shopping.Item {
	out := make([]shopping.Item, len(s.list))
	copy(out, s.list)
	return out
}

// RecomputeList reruns the reconciler against current state and commits the
// result as the new list. Callers mutate mappings or meals, then invoke this;
// selection changes call it automatically.
func (s *Store) RecomputeList() {
	s.list = shopping.Recompute(s.selected, s.meals, s.list, s.mappings)
	s.persist(KeyShoppingList)
}

// AddManualItem appends a user-typed item and dedups the list. Re-adding an
// existing text is a no-op apart from the usage counter.
func (s *Store) AddManualItem(text, cat string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("item text: %w", ErrEmptyField)
	}
	if cat == "" {
		cat = category.Resolve(text, s.mappings)
	}
	s.list = shopping.Dedupe(append(s.list, shopping.Item{
		Text:     text,
		Category: cat,
		Source:   shopping.SourceManual,
	}))
	s.bumpUsage(text)
	s.persist(KeyShoppingList)
	return nil
}

// ToggleItemChecked flips an item's checked state, matching case-insensitively.
func (s *Store) ToggleItemChecked(text string) error {
	key := textutil.NormalizeKey(text)
	for i := range s.list {
		if textutil.NormalizeKey(s.list[i].Text) == key {
			s.list[i].Checked = !s.list[i].Checked
			s.persist(KeyShoppingList)
			return nil
		}
	}
	return fmt.Errorf("item %q: %w", text, ErrNotFound)
}

// RemoveItem deletes an item by text, matching case-insensitively.
func (s *Store) RemoveItem(text string) error {
	key := textutil.NormalizeKey(text)
	for i := range s.list {
		if textutil.NormalizeKey(s.list[i].Text) == key {
			s.list = append(s.list[:i], s.list[i+1:]...)
			s.persist(KeyShoppingList)
			return nil
		}
	}
	return fmt.Errorf("item %q: %w", text, ErrNotFound)
}

// ClearCheckedItems removes every checked item.
func (s *Store) ClearCheckedItems() {
	kept := s.list[:0]
	for _, it := range s.list {
		if !it.Checked {
			kept = append(kept, it)
		}
	}
	s.list = kept
	s.persist(KeyShoppingList)
}

// ClearAllItems empties the shopping list.
func (s *Store) ClearAllItems() {
	s.list = nil
	s.persist(KeyShoppingList)
}

// --- Quick-add groups ----------------------------------------------------------

// QuickAddGroups returns the configured groups.
func (s *Store) QuickAddGroups() []shopping.QuickAddGroup {
	out := make([]shopping.QuickAddGroup, len(s.quickAdds))
	copy(out, s.quickAdds)
	return out
}

// AddQuickAddGroup validates and stores a new group.
func (s *Store) AddQuickAddGroup(name, icon, aisle string, items []string) (shopping.QuickAddGroup, error) {
	name = strings.TrimSpace(name)
	items = nonEmptyLines(items)
	if name == "" || len(items) == 0 {
		return shopping.QuickAddGroup{}, fmt.Errorf("group needs a name and at least one item: %w", ErrEmptyField)
	}
	if icon == "" {
		icon = "📦"
	}
	g := shopping.QuickAddGroup{ID: s.newID(), Name: name, Icon: icon, Aisle: aisle, Items: items}
	s.quickAdds = append(s.quickAdds, g)
	s.persist(KeyQuickAdds)
	return g, nil
}

// DeleteQuickAddGroup removes a group by id.
func (s *Store) DeleteQuickAddGroup(id string) error {
	for i, g := range s.quickAdds {
		if g.ID == id {
			s.quickAdds = append(s.quickAdds[:i], s.quickAdds[i+1:]...)
			s.persist(KeyQuickAdds)
			return nil
		}
	}
	return fmt.Errorf("group %s: %w", id, ErrNotFound)
}

// AddGroupItems pushes every item of a quick-add group onto the shopping
// list in the group's aisle.
func (s *Store) AddGroupItems(id string) error {
	var group *shopping.QuickAddGroup
	for i := range s.quickAdds {
		if s.quickAdds[i].ID == id {
			group = &s.quickAdds[i]
			break
		}
	}
	if group == nil {
		return fmt.Errorf("group %s: %w", id, ErrNotFound)
	}
	for _, text := range group.Items {
		s.list = append(s.list, shopping.Item{
			Text:     strings.TrimSpace(text),
			Category: group.Aisle,
			Source:   shopping.SourceCategory,
		})
		s.bumpUsage(text)
	}
	s.list = shopping.Dedupe(s.list)
	s.persist(KeyShoppingList)
	return nil
}

// --- Ingredient mappings ---------------------------------------------------------

// Mappings returns a copy of the mapping table in insertion order.
func (s *Store) Mappings() category.Mappings {
	out := make(category.Mappings, len(s.mappings))
	copy(out, s.mappings)
	return out
}

// AddIngredientMapping records an ingredient→category override. It does not
// re-categorize the existing list: callers pair it with RecomputeList, as
// the reference UI always does.
func (s *Store) AddIngredientMapping(ingredient, cat string) error {
	if strings.TrimSpace(ingredient) == "" || strings.TrimSpace(cat) == "" {
		return fmt.Errorf("mapping needs an ingredient and a category: %w", ErrEmptyField)
	}
	s.mappings = s.mappings.Set(ingredient, cat)
	s.persist(KeyMappings)
	return nil
}

// RemoveIngredientMapping deletes an override. Pair with RecomputeList.
func (s *Store) RemoveIngredientMapping(ingredient string) error {
	key := textutil.NormalizeKey(ingredient)
	if _, ok := s.mappings.Get(key); !ok {
		return fmt.Errorf("mapping %q: %w", ingredient, ErrNotFound)
	}
	s.mappings = s.mappings.Remove(key)
	s.persist(KeyMappings)
	return nil
}

// ReplaceMappings swaps the whole table (bulk edit / import replace mode).
func (s *Store) ReplaceMappings(m category.Mappings) {
	s.mappings = m
	s.persist(KeyMappings)
}

// MergeMappings adds or updates every entry, keeping existing insertion order
// for entries already present (import merge mode).
func (s *Store) MergeMappings(m category.Mappings) {
	for _, entry := range m {
		s.mappings = s.mappings.Set(entry.Ingredient, entry.Category)
	}
	s.persist(KeyMappings)
}

// --- Master catalog ---------------------------------------------------------------

// Products returns a copy of the master catalog.
func (s *Store) Products() []catalog.Product {
	out := make([]catalog.Product, len(s.products))
	copy(out, s.products)
	return out
}

// ProductFields is an explicit partial update for a catalog product.
type ProductFields struct {
	Name  *string
	Aisle *string
}

// AddProduct appends a catalog product. Editing or adding a product never
// retroactively changes categories already resolved on the shopping list.
func (s *Store) AddProduct(name, aisle string) (catalog.Product, error) {
	name = strings.TrimSpace(name)
	aisle = strings.TrimSpace(aisle)
	if name == "" || aisle == "" {
		return catalog.Product{}, fmt.Errorf("product needs a name and an aisle: %w", ErrEmptyField)
	}
	now := s.now().UTC()
	p := catalog.Product{ID: s.newID(), Name: name, Aisle: aisle, CreatedAt: now, UpdatedAt: now}
	s.products = append(s.products, p)
	s.persist(KeyProducts)
	return p, nil
}

// UpdateProduct applies an explicit field-level update to a product.
func (s *Store) UpdateProduct(id string, fields ProductFields) error {
	for i := range s.products {
		if s.products[i].ID != id {
			continue
		}
		if fields.Name != nil {
			name := strings.TrimSpace(*fields.Name)
			if name == "" {
				return fmt.Errorf("product name: %w", ErrEmptyField)
			}
			s.products[i].Name = name
		}
		if fields.Aisle != nil {
			aisle := strings.TrimSpace(*fields.Aisle)
			if aisle == "" {
				return fmt.Errorf("product aisle: %w", ErrEmptyField)
			}
			s.products[i].Aisle = aisle
		}
		s.products[i].UpdatedAt = s.now().UTC()
		s.persist(KeyProducts)
		return nil
	}
	return fmt.Errorf("product %s: %w", id, ErrNotFound)
}

// DeleteProduct removes a catalog product by id.
func (s *Store) DeleteProduct(id string) error {
	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			s.persist(KeyProducts)
			return nil
		}
	}
	return fmt.Errorf("product %s: %w", id, ErrNotFound)
}

// MergeProducts imports products, deduplicating on normalized name+aisle
// (import merge mode). Returns the number actually added.
func (s *Store) MergeProducts(incoming []catalog.Product) int {
	seen := make(map[string]bool, len(s.products))
	for _, p := range s.products {
		seen[productKey(p)] = true
	}
	added := 0
	now := s.now().UTC()
	for _, p := range incoming {
		if p.Name == "" || seen[productKey(p)] {
			continue
		}
		seen[productKey(p)] = true
		s.products = append(s.products, catalog.Product{
			ID: s.newID(), Name: p.Name, Aisle: p.Aisle, CreatedAt: now, UpdatedAt: now,
		})
		added++
	}
	if added > 0 {
		s.persist(KeyProducts)
	}
	return added
}

// ReplaceProducts wholesale-overwrites the catalog (import replace mode),
// regenerating ids.
func (s *Store) ReplaceProducts(incoming []catalog.Product) {
	now := s.now().UTC()
	s.products = make([]catalog.Product, 0, len(incoming))
	for _, p := range incoming {
		if p.Name == "" {
			continue
		}
		s.products = append(s.products, catalog.Product{
			ID: s.newID(), Name: p.Name, Aisle: p.Aisle, CreatedAt: now, UpdatedAt: now,
		})
	}
	s.persist(KeyProducts)
}

func productKey(p catalog.Product) string {
	return textutil.NormalizeKey(p.Name) + "\x00" + textutil.NormalizeKey(p.Aisle)
}

// --- Aisles -----------------------------------------------------------------------

// Aisles returns the aisle walking order.
func (s *Store) Aisles() []string {
	out := make([]string, len(s.aisles))
	copy(out, s.aisles)
	return out
}

// AddAisle appends a new aisle name to the walking order.
func (s *Store) AddAisle(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("aisle name: %w", ErrEmptyField)
	}
	for _, a := range s.aisles {
		if a == name {
			return fmt.Errorf("aisle %q: %w", name, ErrAisleExists)
		}
	}
	s.aisles = append(s.aisles, name)
	s.persist(KeyAisles)
	return nil
}

// RenameAisle renames an aisle and cascades the change to every catalog
// product and quick-add group on it. Renaming onto a different existing
// aisle is a conflict and nothing is mutated.
func (s *Store) RenameAisle(oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return fmt.Errorf("aisle name: %w", ErrEmptyField)
	}
	if oldName == newName {
		return nil
	}
	at := -1
	for i, a := range s.aisles {
		if a == newName {
			return fmt.Errorf("aisle %q: %w", newName, ErrAisleExists)
		}
		if a == oldName {
			at = i
		}
	}
	if at == -1 {
		return fmt.Errorf("aisle %q: %w", oldName, ErrNotFound)
	}

	s.aisles[at] = newName
	touched := false
	for i := range s.products {
		if s.products[i].Aisle == oldName {
			s.products[i].Aisle = newName
			s.products[i].UpdatedAt = s.now().UTC()
			touched = true
		}
	}
	groupsTouched := false
	for i := range s.quickAdds {
		if s.quickAdds[i].Aisle == oldName {
			s.quickAdds[i].Aisle = newName
			groupsTouched = true
		}
	}
	s.persist(KeyAisles)
	if touched {
		s.persist(KeyProducts)
	}
	if groupsTouched {
		s.persist(KeyQuickAdds)
	}
	return nil
}

// DeleteAisle removes an empty aisle from the walking order. Deleting an
// aisle that catalog products still reference is a conflict.
func (s *Store) DeleteAisle(name string) error {
	at := -1
	for i, a := range s.aisles {
		if a == name {
			at = i
			break
		}
	}
	if at == -1 {
		return fmt.Errorf("aisle %q: %w", name, ErrNotFound)
	}
	for _, p := range s.products {
		if p.Aisle == name {
			return fmt.Errorf("aisle %q: %w", name, ErrAisleInUse)
		}
	}
	s.aisles = append(s.aisles[:at], s.aisles[at+1:]...)
	s.persist(KeyAisles)
	return nil
}

// --- Consolidation ------------------------------------------------------------------

// Mismatches surfaces meal ingredients that nearly match a catalog product.
// The similarity sweep is O(ingredients × catalog), so callers should keep it
// off the hot input path.
func (s *Store) Mismatches() []consolidate.Mismatch {
	return consolidate.FindMismatches(s.meals, s.products)
}

// ApplyConsolidation bulk-renames matching meal ingredient lines to canonical
// catalog names and reconciles the list. Returns the number of lines changed.
func (s *Store) ApplyConsolidation(changes []consolidate.Change) int {
	n := consolidate.Apply(s.meals, changes)
	if n > 0 {
		s.persist(KeyMeals)
		s.RecomputeList()
	}
	return n
}

// --- Usage counters -------------------------------------------------------------------

func (s *Store) bumpUsage(text string) {
	s.usage[textutil.NormalizeKey(text)]++
	s.persist(KeyUsage)
}

// ItemUsage is one entry of the usage leaderboard.
type ItemUsage struct {
	Text  string
	Count int
}

// TopItems returns the n most frequently added items, most used first, ties
// alphabetical.
func (s *Store) TopItems(n int) []ItemUsage {
	out := make([]ItemUsage, 0, len(s.usage))
	for text, count := range s.usage {
		out = append(out, ItemUsage{Text: text, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Text < out[j].Text
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

func nonEmptyLines(lines []string) []string {
	var out []string
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
