package tui

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jfmyers9/profiles/internal/artist"
	"github.com/jfmyers9/profiles/internal/render"
	"github.com/jfmyers9/profiles/internal/viewmodel"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"
)

const (
	pageMain  = "main"
	pageAlbum = "album"

	keyHints = "[gray]enter:search  tab:switch focus  esc:close album  q:quit[-]"
)

// Searcher runs one search end to end.
type Searcher interface {
	Run(ctx context.Context, query string) artist.Result
}

// App is the interactive artist profile browser
type App struct {
	app     *tview.Application
	pages   *tview.Pages
	input   *tview.InputField
	profile *tview.TextView
	albums  *tview.List
	album   *tview.TextView
	status  *tview.TextView

	store    *viewmodel.Store
	searcher Searcher
	logger   zerolog.Logger

	// mu guards the fields below, shared by the input handler and the
	// store subscriber goroutine.
	mu           sync.Mutex
	ctx          context.Context
	cancelSearch context.CancelFunc
	current      artist.ViewModel
	lastProfile  string
	wg           sync.WaitGroup

	cancelFunc context.CancelFunc
}

// New creates a new TUI application publishing searches into store
func New(store *viewmodel.Store, searcher Searcher, logger zerolog.Logger) *App {
	a := &App{
		app:      tview.NewApplication(),
		store:    store,
		searcher: searcher,
		logger:   logger.With().Str("component", "tui").Logger(),
		ctx:      context.Background(),
	}
	a.setupUI()
	return a
}

// setupUI creates the UI layout
func (a *App) setupUI() {
	a.input = tview.NewInputField().
		SetLabel(" Artist: ").
		SetPlaceholder(render.EmptyText).
		SetFieldWidth(0)
	a.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		if q := strings.TrimSpace(a.input.GetText()); q != "" {
			a.Search(q)
		}
	})
	a.input.SetBorder(true)

	// Profile panel
	a.profile = tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true)
	a.profile.SetBorder(true).
		SetTitle(" Profile ").
		SetTitleAlign(tview.AlignLeft)

	// Album list
	a.albums = tview.NewList().
		ShowSecondaryText(false)
	a.albums.SetBorder(true).
		SetTitle(" Albums ").
		SetTitleAlign(tview.AlignLeft)

	// Album drill-down panel
	a.album = tview.NewTextView().
		SetDynamicColors(true)
	a.album.SetBorder(true).
		SetTitleAlign(tview.AlignLeft)

	// Status bar
	a.status = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText(keyHints)

	body := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(a.profile, 0, 3, false).
		AddItem(a.albums, 0, 1, false)

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.input, 3, 0, true).
		AddItem(body, 0, 1, false).
		AddItem(a.status, 1, 0, false)

	a.pages = tview.NewPages().
		AddPage(pageMain, layout, true, true).
		AddPage(pageAlbum, centered(a.album, 60, 20), true, false)

	a.app.SetInputCapture(a.handleKeyEvent)
	a.app.SetRoot(a.pages, true).SetFocus(a.input)

	a.show(artist.ViewModel{})
}

// centered wraps p in a fixed-size box in the middle of the screen
func centered(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}

// handleKeyEvent processes keyboard input
func (a *App) handleKeyEvent(event *tcell.EventKey) *tcell.EventKey {
	if name, _ := a.pages.GetFrontPage(); name == pageAlbum {
		switch {
		case event.Key() == tcell.KeyEscape,
			event.Rune() == 'q', event.Rune() == 'Q':
			a.closeAlbum()
			return nil
		}
		return event
	}

	switch event.Key() {
	case tcell.KeyTab, tcell.KeyBacktab:
		if a.app.GetFocus() == a.input {
			a.app.SetFocus(a.albums)
		} else {
			a.app.SetFocus(a.input)
		}
		return nil
	case tcell.KeyEscape:
		a.app.SetFocus(a.input)
		return nil
	}

	// Letters belong to the input field while it has focus
	if a.app.GetFocus() != a.input {
		switch event.Rune() {
		case 'q', 'Q':
			a.Stop()
			return nil
		}
	}
	return event
}

// Search starts a search for query. A newer search cancels the previous
// one; the store discards any result that still arrives for it.
func (a *App) Search(query string) {
	a.mu.Lock()
	if a.cancelSearch != nil {
		a.cancelSearch()
	}
	ctx, cancel := context.WithCancel(a.ctx)
	a.cancelSearch = cancel
	a.mu.Unlock()

	ticket := a.store.Begin(query)
	a.logger.Debug().Str("query", query).Uint64("generation", ticket.Generation).Msg("Search started")

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		start := time.Now()
		result := a.searcher.Run(ctx, query)
		published := a.store.Complete(ctx, ticket, result)

		a.logger.Debug().
			Str("query", query).
			Uint64("generation", ticket.Generation).
			Bool("published", published).
			Dur("duration", time.Since(start)).
			Msg("Search finished")
	}()
}

// Wait blocks until every started search has finished.
func (a *App) Wait() {
	a.wg.Wait()
}

// Run starts the TUI and blocks until it exits
func (a *App) Run(ctx context.Context) error {
	ctx, a.cancelFunc = context.WithCancel(ctx)

	a.mu.Lock()
	a.ctx = ctx
	a.mu.Unlock()

	updates, unsubscribe := a.store.Subscribe()
	defer unsubscribe()

	// Searches started before Run published without a subscriber
	a.show(a.store.Current())
	go a.handleUpdates(ctx, updates)

	if err := a.app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	a.cancelFunc()
	return nil
}

// handleUpdates redraws whenever the store publishes a new view model
func (a *App) handleUpdates(ctx context.Context, updates <-chan artist.ViewModel) {
	for {
		select {
		case <-ctx.Done():
			a.app.Stop()
			return
		case vm, ok := <-updates:
			if !ok {
				return
			}
			a.app.QueueUpdateDraw(func() {
				a.show(vm)
			})
		}
	}
}

// show updates every panel for vm. Must run on the UI goroutine.
func (a *App) show(vm artist.ViewModel) {
	a.mu.Lock()
	a.current = vm
	a.mu.Unlock()

	text := profileText(vm)
	if text != a.lastProfile {
		a.lastProfile = text
		a.profile.SetText(text)
		a.profile.ScrollToBeginning()
	}

	a.albums.Clear()
	for i, item := range albumItems(vm) {
		id := vm.Albums[i].ID
		a.albums.AddItem(item, "", 0, func() {
			a.openAlbum(id)
		})
	}

	a.status.SetText(statusText(vm) + "  " + keyHints)
}

// openAlbum shows the drill-down panel for the album with the given ID
func (a *App) openAlbum(id string) {
	a.mu.Lock()
	vm := a.current
	a.mu.Unlock()

	album, ok := vm.Album(id)
	if !ok {
		return
	}

	var b bytes.Buffer
	if err := render.RenderAlbum(&b, album); err != nil {
		a.logger.Error().Err(err).Str("album_id", id).Msg("Failed to render album")
		return
	}

	a.album.SetTitle(" " + tview.Escape(album.Name) + " ")
	a.album.SetText(tview.TranslateANSI(tview.Escape(b.String())))
	a.album.ScrollToBeginning()
	a.pages.ShowPage(pageAlbum)
	a.app.SetFocus(a.album)
}

// closeAlbum hides the drill-down panel
func (a *App) closeAlbum() {
	a.pages.HidePage(pageAlbum)
	a.app.SetFocus(a.albums)
}

// Stop cancels in-flight searches and stops the TUI application
func (a *App) Stop() {
	a.mu.Lock()
	if a.cancelSearch != nil {
		a.cancelSearch()
	}
	a.mu.Unlock()

	if a.cancelFunc != nil {
		a.cancelFunc()
	}
	a.app.Stop()
}

// profileText renders vm with tview color tags
func profileText(vm artist.ViewModel) string {
	var b bytes.Buffer
	if err := render.Render(&b, vm); err != nil {
		return tview.Escape(err.Error())
	}
	return tview.TranslateANSI(tview.Escape(b.String()))
}

// albumItems returns one list entry per album
func albumItems(vm artist.ViewModel) []string {
	if render.StateOf(vm) != render.StatePopulated {
		return nil
	}

	items := make([]string, len(vm.Albums))
	for i, album := range vm.Albums {
		items[i] = fmt.Sprintf("%d. %s", i+1, album.Name)
	}
	return items
}

// statusText summarises the current state for the status bar
func statusText(vm artist.ViewModel) string {
	switch render.StateOf(vm) {
	case render.StateLoading:
		return fmt.Sprintf("[yellow]Searching for %q...[-]", tview.Escape(vm.Query))
	case render.StateError:
		return fmt.Sprintf("[red]Search for %q failed[-]", tview.Escape(vm.Query))
	case render.StatePopulated:
		return fmt.Sprintf("[green]%s[-]", tview.Escape(vm.Artist.Name))
	default:
		if vm.Query != "" {
			return fmt.Sprintf("[gray]No artist found for %q[-]", tview.Escape(vm.Query))
		}
		return ""
	}
}
