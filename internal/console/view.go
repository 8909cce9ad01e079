package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rpggio/quotedesk/internal/domain/activity"
	"github.com/rpggio/quotedesk/internal/domain/catalog"
	"github.com/rpggio/quotedesk/internal/domain/viewstate"
)

var (
	// ErrUnknownColumn indicates a column key the view does not define.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrNotSortable indicates a column without a comparator.
	ErrNotSortable = errors.New("column is not sortable")
)

// DefaultPageSize matches the row count of the console tables.
const DefaultPageSize = 5

// ColumnInfo describes a column for presentation.
type ColumnInfo struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Sortable bool   `json:"sortable"`
}

// View is a list view over one resource. Implementations are safe for
// concurrent use.
type View interface {
	Resource() catalog.Resource
	Columns() []ColumnInfo
	// Rows renders the current page.
	Rows() [][]string
	// AllRows renders the whole projection.
	AllRows() [][]string
	Len() int
	Total() int

	Filter() string
	SetFilter(q string)
	Sort() viewstate.SortState
	ToggleSort(columnKey string) error

	Page() int
	PageCount() int
	PageSize() int
	SetPage(index int)
	SetPageSize(size int)

	Loading() bool
	// Refresh fetches the record set. A failed fetch leaves the view empty
	// and its error is returned for logging only.
	Refresh(ctx context.Context) error
	// Subscribe registers fn to run after every re-derivation. fn runs with
	// the view locked and must not call back into it.
	Subscribe(fn func()) func()
}

// ActivityRecorder receives degraded fetches and create outcomes.
type ActivityRecorder interface {
	Record(ctx context.Context, typ activity.ActivityType, resource, summary string)
}

// ViewOptions configures a view.
type ViewOptions struct {
	PageSize int
	Activity ActivityRecorder
	Logger   *slog.Logger
}

type resourceView[T any] struct {
	def      catalog.Definition[T]
	fetch    func(context.Context) ([]T, error)
	activity ActivityRecorder
	logger   *slog.Logger

	mu       sync.Mutex
	model    *viewstate.Model[T]
	page     int
	pageSize int
	loading  bool
}

// NewView builds a view for def whose records come from fetch.
func NewView[T any](def catalog.Definition[T], fetch func(context.Context) ([]T, error), opts ViewOptions) View {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &resourceView[T]{
		def:      def,
		fetch:    fetch,
		activity: opts.Activity,
		logger:   opts.Logger,
		model:    viewstate.New(def.Title),
		pageSize: opts.PageSize,
	}
}

func (v *resourceView[T]) Resource() catalog.Resource { return v.def.Resource }

func (v *resourceView[T]) Columns() []ColumnInfo {
	cols := make([]ColumnInfo, 0, len(v.def.Columns))
	for _, c := range v.def.Columns {
		cols = append(cols, ColumnInfo{Key: c.Key, Title: c.Title, Sortable: c.Sortable()})
	}
	return cols
}

func (v *resourceView[T]) Rows() [][]string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.render(v.model.Page(v.page, v.pageSize))
}

func (v *resourceView[T]) AllRows() [][]string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.render(v.model.Projection())
}

func (v *resourceView[T]) render(records []T) [][]string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := make([]string, len(v.def.Columns))
		for i, c := range v.def.Columns {
			row[i] = c.Render(rec)
		}
		rows = append(rows, row)
	}
	return rows
}

func (v *resourceView[T]) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.model.Len()
}

func (v *resourceView[T]) Total() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.model.Records())
}

func (v *resourceView[T]) Filter() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.model.Query()
}

func (v *resourceView[T]) SetFilter(q string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.page = 0
	v.model.SetFilterText(q)
}

func (v *resourceView[T]) Sort() viewstate.SortState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.model.Sort()
}

func (v *resourceView[T]) ToggleSort(columnKey string) error {
	col, ok := v.def.Column(columnKey)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, columnKey)
	}
	if !col.Sortable() {
		return fmt.Errorf("%w: %s", ErrNotSortable, columnKey)
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.page = 0
	v.model.SetSort(col.Key, col.Compare)
	return nil
}

func (v *resourceView[T]) Page() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.clampedPage()
}

func (v *resourceView[T]) clampedPage() int {
	return max(0, min(v.page, v.model.PageCount(v.pageSize)-1))
}

func (v *resourceView[T]) PageCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.model.PageCount(v.pageSize)
}

func (v *resourceView[T]) PageSize() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pageSize
}

func (v *resourceView[T]) SetPage(index int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.page = index
	v.page = v.clampedPage()
}

func (v *resourceView[T]) SetPageSize(size int) {
	if size <= 0 {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pageSize = size
	v.page = v.clampedPage()
}

func (v *resourceView[T]) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

func (v *resourceView[T]) Refresh(ctx context.Context) error {
	v.mu.Lock()
	v.loading = true
	v.mu.Unlock()

	records, err := v.fetch(ctx)
	if err != nil {
		v.logger.Warn("fetch failed, showing empty list",
			"resource", v.def.Resource,
			"error", err,
		)
		if v.activity != nil {
			v.activity.Record(ctx, activity.TypeFetchDegraded, string(v.def.Resource), err.Error())
		}
		records = nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = false
	v.model.Load(records)
	v.page = v.clampedPage()
	return err
}

func (v *resourceView[T]) Subscribe(fn func()) func() {
	v.mu.Lock()
	defer v.mu.Unlock()
	unsubscribe := v.model.Subscribe(func([]T) { fn() })
	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		unsubscribe()
	}
}
