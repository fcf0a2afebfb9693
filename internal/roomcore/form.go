package roomcore

import (
	"math/big"
	"strings"
	"sync"
	"time"
)

// DefaultDebounce is how long input must be idle before it reaches the payload.
const DefaultDebounce = 500 * time.Millisecond

// InitialPrice is the price field value of an empty form.
const InitialPrice = "0"

// Fields are the five inputs of the Add Room form.
type Fields struct {
	Name        string `json:"name"`
	ImageURL    string `json:"image"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Price       string `json:"price"`
}

// EmptyFields returns the values of a freshly opened form.
func EmptyFields() Fields { return Fields{Price: InitialPrice} }

// IsComplete reports whether every field is filled. Price "0" counts as empty.
func (f Fields) IsComplete() bool {
	return filled(f.Name) &&
		filled(f.ImageURL) &&
		filled(f.Description) &&
		filled(f.Location) &&
		priceFilled(f.Price)
}

// PriceWei returns the price in base units.
func (f Fields) PriceWei() (*big.Int, error) { return ParsePrice(f.Price) }

func filled(s string) bool { return strings.TrimSpace(s) != "" }

// priceFilled treats a numeric zero as empty. A non-numeric price still
// counts as filled and fails later in ParsePrice.
func priceFilled(s string) bool {
	if !filled(s) {
		return false
	}
	if v, err := ParsePrice(s); err == nil && v.Sign() == 0 {
		return false
	}
	return true
}

// Form holds live input values, their debounced mirrors and the loading status.
type Form struct {
	mu       sync.Mutex
	live     Fields
	status   string
	onChange func(Fields)

	name, image, description, location, price *Debounced[string]
}

// NewForm returns an empty form whose debounced copies settle after delay.
func NewForm(delay time.Duration) *Form {
	f := &Form{live: EmptyFields()}
	settled := func(string) { f.changed() }
	f.name = NewDebounced("", delay, settled)
	f.image = NewDebounced("", delay, settled)
	f.description = NewDebounced("", delay, settled)
	f.location = NewDebounced("", delay, settled)
	f.price = NewDebounced(InitialPrice, delay, settled)
	return f
}

func (f *Form) SetName(v string)        { f.set(&f.live.Name, f.name, v) }
func (f *Form) SetImageURL(v string)    { f.set(&f.live.ImageURL, f.image, v) }
func (f *Form) SetDescription(v string) { f.set(&f.live.Description, f.description, v) }
func (f *Form) SetLocation(v string)    { f.set(&f.live.Location, f.location, v) }
func (f *Form) SetPrice(v string)       { f.set(&f.live.Price, f.price, v) }

func (f *Form) set(dst *string, d *Debounced[string], v string) {
	f.mu.Lock()
	*dst = v
	f.mu.Unlock()
	d.Set(v)
}

// SetFields replaces all live values at once.
func (f *Form) SetFields(v Fields) {
	f.SetName(v.Name)
	f.SetImageURL(v.ImageURL)
	f.SetDescription(v.Description)
	f.SetLocation(v.Location)
	f.SetPrice(v.Price)
}

// Fields returns the live values.
func (f *Form) Fields() Fields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.live
}

// Debounced returns the settled values used as the submission payload.
func (f *Form) Debounced() Fields {
	return Fields{
		Name:        f.name.Value(),
		ImageURL:    f.image.Value(),
		Description: f.description.Value(),
		Location:    f.location.Value(),
		Price:       f.price.Value(),
	}
}

// IsComplete evaluates the live values.
func (f *Form) IsComplete() bool { return f.Fields().IsComplete() }

// Settled reports whether no input is waiting on the debounce delay.
func (f *Form) Settled() bool {
	for _, d := range f.all() {
		if d.Pending() {
			return false
		}
	}
	return true
}

// Flush applies pending input to the debounced copies immediately.
func (f *Form) Flush() {
	for _, d := range f.all() {
		d.Flush()
	}
}

// Clear resets every field and its debounced copy.
func (f *Form) Clear() {
	f.mu.Lock()
	f.live = EmptyFields()
	f.mu.Unlock()
	empty := EmptyFields()
	f.name.Reset(empty.Name)
	f.image.Reset(empty.ImageURL)
	f.description.Reset(empty.Description)
	f.location.Reset(empty.Location)
	f.price.Reset(empty.Price)
	f.changed()
}

// Close stops pending debounce timers.
func (f *Form) Close() {
	for _, d := range f.all() {
		d.Stop()
	}
}

// OnChange registers fn to run whenever the debounced values change.
func (f *Form) OnChange(fn func(Fields)) {
	f.mu.Lock()
	f.onChange = fn
	f.mu.Unlock()
}

// Status returns the loading text; empty means idle.
func (f *Form) Status() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Loading reports whether a submission is in flight.
func (f *Form) Loading() bool { return f.Status() != StatusIdle }

func (f *Form) setStatus(s string) {
	f.mu.Lock()
	f.status = s
	f.mu.Unlock()
}

func (f *Form) changed() {
	f.mu.Lock()
	fn := f.onChange
	f.mu.Unlock()
	if fn != nil {
		fn(f.Debounced())
	}
}

func (f *Form) all() []*Debounced[string] {
	return []*Debounced[string]{f.name, f.image, f.description, f.location, f.price}
}
