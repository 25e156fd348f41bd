package ui

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/gridflow/internal/export"
	"github.com/piwi3910/gridflow/internal/importer"
	"github.com/piwi3910/gridflow/internal/model"
	"github.com/piwi3910/gridflow/internal/project"
	"github.com/piwi3910/gridflow/internal/ui/widgets"
)

const maxRecentCatalogs = 10

// App holds all application state and UI references.
type App struct {
	app        fyne.App
	window     fyne.Window
	config     model.AppConfig
	configPath string
	logger     *slog.Logger
	theme      *GridFlowTheme

	grid    *widgets.GridView
	history *History
	status  *widget.Label

	mainMenu      *fyne.MainMenu
	categoryItems map[model.SizeCategory]*fyne.MenuItem
	insetItems    map[model.InsetMode]*fyne.MenuItem
}

// NewApp creates the application UI around a demo catalog, configured from config.
func NewApp(application fyne.App, window fyne.Window, config model.AppConfig, configPath string, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{
		app:        application,
		window:     window,
		config:     config,
		configPath: configPath,
		logger:     logger,
		theme:      NewGridFlowTheme(config.Theme),
		history:    NewHistory(),
		status:     widget.NewLabel(""),
	}
	a.grid = widgets.NewGridView(model.DemoCatalog(), settingsFromConfig(config), config.ContentInsets, logger)
	a.grid.OnChanged = func(model.InvalidationRequest) { a.updateStatus() }
	a.app.Settings().SetTheme(a.theme)
	return a
}

// settingsFromConfig returns the default layout settings overridden by cfg.
func settingsFromConfig(cfg model.AppConfig) model.LayoutSettings {
	s := model.DefaultLayoutSettings()
	cfg.ApplyToSettings(&s)
	return s
}

// Grid returns the grid widget.
func (a *App) Grid() *widgets.GridView {
	return a.grid
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	// File Menu
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Demo Catalog", func() {
			a.setCatalog(model.DemoCatalog(), "New Demo Catalog")
		}),
		fyne.NewMenuItem("New Empty Catalog", func() {
			a.setCatalog(model.NewCatalog("Untitled"), "New Empty Catalog")
		}),
		fyne.NewMenuItem("Open Catalog...", func() {
			a.loadCatalog()
		}),
		fyne.NewMenuItem("Save Catalog...", func() {
			a.saveCatalog()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Items from CSV...", func() {
			a.importItems()
		}),
		fyne.NewMenuItem("Import Items from Excel...", func() {
			a.importItems()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Layout PDF...", func() {
			a.exportLayout("layout.pdf", export.ExportPDF)
		}),
		fyne.NewMenuItem("Export Item Labels...", func() {
			a.exportLayout("labels.pdf", export.ExportLabels)
		}),
		fyne.NewMenuItem("Export Frames Spreadsheet...", func() {
			a.exportLayout("layout.xlsx", export.ExportXLSX)
		}),
		fyne.NewMenuItem("Export Frames DXF...", func() {
			a.exportLayout("layout.dxf", export.ExportDXF)
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings...", func() {
			a.showSettingsDialog()
		}),
		fyne.NewMenuItem("Import / Export Data...", func() {
			a.showImportExportDialog()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	// Edit Menu
	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", func() {
			a.undo()
		}),
		fyne.NewMenuItem("Redo", func() {
			a.redo()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Add Item...", func() {
			a.showAddItemDialog()
		}),
		fyne.NewMenuItem("Clear All Items", func() {
			cleared := model.NewCatalog(a.grid.Catalog().Name)
			a.setCatalog(cleared, "Clear All Items")
		}),
	)

	// View Menu
	a.categoryItems = map[model.SizeCategory]*fyne.MenuItem{}
	var categoryMenuItems []*fyne.MenuItem
	for _, c := range model.SizeCategories {
		category := c
		item := fyne.NewMenuItem(category.String(), func() {
			a.setSizeCategory(category)
		})
		a.categoryItems[category] = item
		categoryMenuItems = append(categoryMenuItems, item)
	}
	textSize := fyne.NewMenuItem("Text Size", nil)
	textSize.ChildMenu = fyne.NewMenu("", categoryMenuItems...)

	a.insetItems = map[model.InsetMode]*fyne.MenuItem{}
	for _, m := range []model.InsetMode{model.InsetModeLegacy, model.InsetModeEdges} {
		mode := m
		a.insetItems[mode] = fyne.NewMenuItem("Insets: "+mode.String(), func() {
			a.setInsetMode(mode)
		})
	}

	viewMenu := fyne.NewMenu("View",
		textSize,
		fyne.NewMenuItemSeparator(),
		a.insetItems[model.InsetModeLegacy],
		a.insetItems[model.InsetModeEdges],
	)

	// Help Menu
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	a.mainMenu = fyne.NewMainMenu(
		fileMenu,
		editMenu,
		viewMenu,
		helpMenu,
	)
	a.syncMenuChecks()
	a.window.SetMainMenu(a.mainMenu)
}

// syncMenuChecks marks the active text size and inset mode in the View menu.
func (a *App) syncMenuChecks() {
	settings := a.grid.Settings()
	for c, item := range a.categoryItems {
		item.Checked = c == settings.SizeCategory
	}
	for m, item := range a.insetItems {
		item.Checked = m == settings.InsetMode
	}
	if a.mainMenu != nil {
		a.mainMenu.Refresh()
	}
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About GridFlow",
		"GridFlow: Self-Sizing Card Grid\n\n"+
			"Lays out a catalog as a multi-column grid whose cards\n"+
			"start at an estimated height and settle as they are measured.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	toolbar := container.NewHBox(
		newIconButtonWithTooltip(theme.FolderOpenIcon(), "Open catalog", a.loadCatalog),
		newIconButtonWithTooltip(theme.DocumentSaveIcon(), "Save catalog", a.saveCatalog),
		widget.NewSeparator(),
		newIconButtonWithTooltip(theme.ContentAddIcon(), "Add item", a.showAddItemDialog),
		newIconButtonWithTooltip(theme.ContentUndoIcon(), "Undo", a.undo),
		newIconButtonWithTooltip(theme.ContentRedoIcon(), "Redo", a.redo),
		widget.NewSeparator(),
		newIconButtonWithTooltip(theme.ZoomOutIcon(), "Smaller text", func() { a.stepSizeCategory(-1) }),
		newIconButtonWithTooltip(theme.ZoomInIcon(), "Larger text", func() { a.stepSizeCategory(1) }),
		widget.NewSeparator(),
		newIconButtonWithTooltip(theme.DocumentPrintIcon(), "Export layout PDF", func() {
			a.exportLayout("layout.pdf", export.ExportPDF)
		}),
		newIconButtonWithTooltip(theme.SettingsIcon(), "Settings", a.showSettingsDialog),
		layout.NewSpacer(),
		a.status,
	)

	a.updateStatus()
	content := container.NewBorder(toolbar, nil, nil, nil, a.grid)
	return withToolTipLayer(content, a.window.Canvas())
}

// updateStatus shows item count, column count, content height and build generation.
func (a *App) updateStatus() {
	l := a.grid.Engine()
	a.status.SetText(fmt.Sprintf("%d items | %d columns | %.0f pt | gen %d",
		l.Len(), l.Geometry().Columns, l.ContentSize().Height, l.Generation()))
}

// ─── History ────────────────────────────────────────────────

func (a *App) snapshot(label string) Snapshot {
	return MakeSnapshot(a.grid.Catalog(), a.grid.Settings(), label)
}

func (a *App) restore(s Snapshot) {
	if s.Settings != a.grid.Settings() {
		a.grid.SetSettings(s.Settings)
		a.syncMenuChecks()
	}
	a.grid.SetCatalog(s.Catalog)
	a.updateStatus()
}

func (a *App) undo() {
	s, ok := a.history.Undo(a.snapshot("Redo"))
	if !ok {
		return
	}
	a.logger.Debug("Undo", "label", s.Label)
	a.restore(s)
}

func (a *App) redo() {
	s, ok := a.history.Redo(a.snapshot("Undo"))
	if !ok {
		return
	}
	a.logger.Debug("Redo", "label", s.Label)
	a.restore(s)
}

// setCatalog records the current state for undo and shows catalog.
func (a *App) setCatalog(catalog model.Catalog, label string) {
	a.history.Push(a.snapshot(label))
	a.grid.SetCatalog(catalog)
	a.updateStatus()
}

// ─── Settings ───────────────────────────────────────────────

func (a *App) setSizeCategory(category model.SizeCategory) {
	settings := a.grid.Settings()
	if settings.SizeCategory == category {
		return
	}
	a.history.Push(a.snapshot("Text Size"))
	settings.SizeCategory = category
	a.grid.SetSettings(settings)
	a.syncMenuChecks()
	a.updateStatus()
}

// stepSizeCategory moves the text size delta steps through the category list.
func (a *App) stepSizeCategory(delta int) {
	current := a.grid.Settings().SizeCategory
	for i, c := range model.SizeCategories {
		if c != current {
			continue
		}
		next := i + delta
		if next < 0 || next >= len(model.SizeCategories) {
			return
		}
		a.setSizeCategory(model.SizeCategories[next])
		return
	}
}

func (a *App) setInsetMode(mode model.InsetMode) {
	settings := a.grid.Settings()
	if settings.InsetMode == mode {
		return
	}
	a.history.Push(a.snapshot("Inset Mode"))
	settings.InsetMode = mode
	a.grid.SetSettings(settings)
	a.syncMenuChecks()
	a.updateStatus()
}

// applyConfig pushes the config's theme, layout settings and insets to the UI.
func (a *App) applyConfig() {
	a.theme.SetVariantName(a.config.Theme)
	a.app.Settings().SetTheme(a.theme)

	settings := settingsFromConfig(a.config)
	if settings != a.grid.Settings() {
		a.grid.SetSettings(settings)
	}
	a.grid.SetInsets(a.config.ContentInsets)
	a.syncMenuChecks()
	a.updateStatus()
}

// ─── Items ──────────────────────────────────────────────────

func (a *App) showAddItemDialog() {
	catalog := a.grid.Catalog()

	titleEntry := widget.NewEntry()
	titleEntry.SetPlaceHolder("Item title")
	titleEntry.SetText(fmt.Sprintf("Item %d", catalog.Len()+1))

	subtitleEntry := widget.NewEntry()
	subtitleEntry.SetPlaceHolder("Optional subtitle")

	groupNames := make([]string, 0, len(catalog.Groups)+1)
	for _, g := range catalog.Groups {
		groupNames = append(groupNames, g.Title)
	}
	groupSelect := widget.NewSelectEntry(groupNames)
	if len(groupNames) > 0 {
		groupSelect.SetText(groupNames[len(groupNames)-1])
	} else {
		groupSelect.SetText(importer.DefaultGroupTitle)
	}

	form := dialog.NewForm("Add Item", "Add", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Title", titleEntry),
			widget.NewFormItem("Subtitle", subtitleEntry),
			widget.NewFormItem("Group", groupSelect),
		},
		func(ok bool) {
			if !ok {
				return
			}
			title := strings.TrimSpace(titleEntry.Text)
			if title == "" {
				dialog.ShowError(fmt.Errorf("title must not be empty"), a.window)
				return
			}
			updated := addItem(a.grid.Catalog(), strings.TrimSpace(groupSelect.Text),
				model.NewItem(title, strings.TrimSpace(subtitleEntry.Text)))
			a.setCatalog(updated, "Add Item")
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 280))
	form.Show()
}

// addItem returns a copy of catalog with item appended to the group titled
// group, creating the group at the end when it does not exist.
func addItem(catalog model.Catalog, group string, item model.Item) model.Catalog {
	if group == "" {
		group = importer.DefaultGroupTitle
	}
	updated := copyCatalog(catalog)
	for i := range updated.Groups {
		if updated.Groups[i].Title == group {
			updated.Groups[i].Items = append(updated.Groups[i].Items, item)
			return updated
		}
	}
	updated.Groups = append(updated.Groups, model.NewGroup(group, item))
	return updated
}

// ─── Persistence ────────────────────────────────────────────

func (a *App) saveCatalog() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := project.SaveCatalog(path, a.grid.Catalog()); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.rememberCatalog(path)
	}, a.window)
	name := a.grid.Catalog().Name
	if name == "" {
		name = "catalog"
	}
	d.SetFileName(name + project.CatalogExt)
	d.Show()
}

func (a *App) loadCatalog() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		path := reader.URI().Path()
		catalog, err := project.LoadCatalog(path)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.setCatalog(catalog, "Open Catalog")
		a.rememberCatalog(path)
	}, a.window)
	d.Show()
}

// rememberCatalog records path in the recent list and saves the config.
func (a *App) rememberCatalog(path string) {
	a.config.AddRecentCatalog(path, maxRecentCatalogs)
	if err := a.saveConfig(); err != nil {
		a.logger.Warn("Failed to save config", "path", a.configPath, "error", err)
	}
}

// exportLayout asks for a destination and writes the current layout with fn.
func (a *App) exportLayout(defaultName string, fn func(string, export.Snapshot) error) {
	if a.grid.Catalog().Len() == 0 {
		dialog.ShowInformation("Nothing to export", "Add at least one item first.", a.window)
		return
	}
	snap := export.NewSnapshot(a.grid.Engine(), a.grid.Catalog(), a.grid.Viewport())

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		// The exporters write by path.
		writer.Close()
		if err := fn(path, snap); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.logger.Info("Exported layout", "path", path, "items", len(snap.Records))
		dialog.ShowInformation("Export Complete",
			fmt.Sprintf("Layout saved to %s", filepath.Base(path)), a.window)
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}

// ─── Import ─────────────────────────────────────────────────

func (a *App) importItems() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		result := importer.Import(reader.URI().Path())
		a.handleImportResult(result)
	}, a.window)
}

func (a *App) handleImportResult(result importer.ImportResult) {
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", errorMsg), a.window)
	}

	for _, w := range result.Warnings {
		a.logger.Warn("Import warning", "warning", w)
	}

	if result.ItemCount() > 0 {
		a.setCatalog(result.Catalog, "Import Items")

		msg := fmt.Sprintf("Successfully imported %d items.", result.ItemCount())
		if len(result.Errors) > 0 {
			msg += fmt.Sprintf("\n\nHowever, %d rows had errors and were skipped.", len(result.Errors))
		}
		dialog.ShowInformation("Import Complete", msg, a.window)
	}
}
