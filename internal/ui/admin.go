package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/gridflow/internal/model"
	"github.com/piwi3910/gridflow/internal/project"
)

// showSettingsDialog displays the application settings editor.
func (a *App) showSettingsDialog() {
	cfg := a.config

	// Helper to create a float entry bound to a pointer
	floatEntry := func(val *float64) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf("%.1f", *val))
		e.OnChanged = func(text string) {
			if v, err := strconv.ParseFloat(text, 64); err == nil {
				*val = v
			}
		}
		return e
	}

	themeSelect := widget.NewSelect([]string{"system", "light", "dark"}, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	categorySelect := widget.NewSelect(model.SizeCategoryNames(), func(selected string) {
		cfg.SizeCategory = selected
	})
	categorySelect.SetSelected(cfg.SizeCategory)

	insetSelect := widget.NewSelect([]string{model.InsetModeLegacy.String(), model.InsetModeEdges.String()}, func(selected string) {
		cfg.InsetMode = selected
	})
	insetSelect.SetSelected(cfg.InsetMode)

	formItems := []*widget.FormItem{
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Text Size", categorySelect),
		widget.NewFormItem("Inset Mode", insetSelect),
		widget.NewFormItem("Estimated Row Height (pt)", floatEntry(&cfg.EstimatedRowHeight)),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Inset Left (pt)", floatEntry(&cfg.ContentInsets.Left)),
		widget.NewFormItem("Inset Top (pt)", floatEntry(&cfg.ContentInsets.Top)),
		widget.NewFormItem("Inset Right (pt)", floatEntry(&cfg.ContentInsets.Right)),
		widget.NewFormItem("Inset Bottom (pt)", floatEntry(&cfg.ContentInsets.Bottom)),
	}

	d := dialog.NewForm("Settings", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			if cfg.EstimatedRowHeight <= 0 {
				dialog.ShowError(fmt.Errorf("estimated row height must be > 0"), a.window)
				return
			}
			a.config = cfg
			a.applyConfig()
			if err := a.saveConfig(); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
			} else {
				dialog.ShowInformation("Settings Saved", "Application settings have been saved.", a.window)
			}
		},
		a.window,
	)
	d.Resize(fyne.NewSize(500, 520))
	d.Show()
}

// showImportExportDialog displays the backup import/export dialog.
func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("Export All Data...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			defer writer.Close()
			path := writer.URI().Path()
			catalogs := []model.Catalog{a.grid.Catalog()}
			if err := project.ExportAllData(path, a.config, catalogs); err != nil {
				dialog.ShowError(err, a.window)
			} else {
				dialog.ShowInformation("Export Complete",
					fmt.Sprintf("All application data exported to:\n%s", path), a.window)
			}
		}, a.window)
		d.SetFileName("gridflow-backup.json")
		d.Show()
	})

	importBtn := widget.NewButton("Import All Data...", func() {
		dialog.ShowConfirm("Import Data",
			"Importing data will replace your current settings and catalog.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					defer reader.Close()
					path := reader.URI().Path()
					backup, err := project.ImportAllData(path)
					if err != nil {
						dialog.ShowError(err, a.window)
						return
					}
					a.config = backup.Config
					a.applyConfig()
					if len(backup.Catalogs) > 0 {
						a.setCatalog(backup.Catalogs[0], "Import Backup")
					}
					if err := a.saveConfig(); err != nil {
						dialog.ShowError(fmt.Errorf("failed to save imported settings: %w", err), a.window)
						return
					}
					dialog.ShowInformation("Import Complete",
						fmt.Sprintf("Data imported successfully from backup created at %s.", backup.CreatedAt), a.window)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export settings and the current catalog to a backup file,\nor import from a previously exported backup."),
		widget.NewSeparator(),
		exportBtn,
		widget.NewSeparator(),
		importBtn,
	)

	d := dialog.NewCustom("Import / Export Data", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 250))
	d.Show()
}

// saveConfig persists the current app config to disk.
func (a *App) saveConfig() error {
	return project.SaveAppConfig(a.configPath, a.config)
}
