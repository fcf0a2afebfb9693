package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	core "github.com/ligun0805/room-market/internal/roomcore"
)

// guiNotifier shows submit progress in the modal's status card and as
// desktop notifications.
type guiNotifier struct {
	a       fyne.App
	status  *widget.Label
	spinner *widget.ProgressBarInfinite
}

func (n *guiNotifier) Pending(msg string) {
	n.status.SetText(msg)
	n.spinner.Show()
}

func (n *guiNotifier) Success(msg string) {
	n.status.SetText(msg + " ✔")
	n.spinner.Hide()
	n.a.SendNotification(&fyne.Notification{Title: "Add Room", Content: msg})
}

func (n *guiNotifier) Error(msg string) {
	if isRPCTimeout(msg) {
		msg += " (RPC timeout, check RPC_URL)"
	}
	n.status.SetText(msg)
	n.spinner.Hide()
	n.a.SendNotification(&fyne.Notification{Title: "Add Room failed", Content: msg})
}

// openAddRoomModal shows the Add Room form over w.
func openAddRoomModal(a fyne.App, w fyne.Window, debounce, confirmTimeout time.Duration, onCreated func(core.Result)) {
	form := core.NewForm(debounce)

	nameE := widget.NewEntry()
	imageE := widget.NewEntry()
	imageE.SetPlaceHolder("https://")
	descE := widget.NewEntry()
	locE := widget.NewEntry()
	priceE := widget.NewEntry()
	priceE.SetPlaceHolder("0.0")
	priceHint := widget.NewLabel("")

	status := widget.NewLabel("")
	status.Wrapping = fyne.TextWrapWord
	spinner := widget.NewProgressBarInfinite()
	spinner.Hide()
	statusCard := widget.NewCard("Status", "", container.NewVBox(status, spinner))

	sub := &core.Submitter{
		Form:   form,
		Writer: liveWriter(),
		Notify: &guiNotifier{a: a, status: status, spinner: spinner},
		Logf:   func(f string, args ...any) { appendLogLine(a, fmt.Sprintf(f, args...)) },
	}

	var modal dialog.Dialog
	var createBtn *widget.Button
	refresh := func() {
		if st := form.Status(); st != core.StatusIdle {
			createBtn.SetText(st)
		} else {
			createBtn.SetText("Create")
		}
		if sub.CanSubmit() { createBtn.Enable() } else { createBtn.Disable() }
	}
	sub.OnStatus = func(string) { refresh() }
	sub.OnDone = func(res core.Result) {
		if modal != nil { modal.Hide() }
		if onCreated != nil { onCreated(res) }
	}

	// Price preview follows the debounced value, like the payload does.
	form.OnChange(func(f core.Fields) {
		if v, err := f.PriceWei(); err != nil {
			priceHint.SetText("invalid price")
		} else if v.Sign() > 0 {
			priceHint.SetText(fmt.Sprintf("= %s wei", v.String()))
		} else {
			priceHint.SetText("")
		}
	})

	bind := func(e *widget.Entry, set func(string)) {
		e.OnChanged = func(s string) { set(s); refresh() }
	}
	bind(nameE, form.SetName)
	bind(imageE, form.SetImageURL)
	bind(descE, form.SetDescription)
	bind(locE, form.SetLocation)
	bind(priceE, form.SetPrice)

	createBtn = widget.NewButtonWithIcon("Create", theme.ConfirmIcon(), func() {
		createBtn.Disable()
		go func() {
			ctx := appCtx
			if confirmTimeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(appCtx, confirmTimeout)
				defer cancel()
			}
			started := time.Now()
			snap := form.Fields()
			res, err := sub.Submit(ctx)
			it := TelemetryItem{Time: started.UTC().Format(time.RFC3339), Action: "writeRoom", Room: snap.Name}
			switch {
			case errors.Is(err, core.ErrBusy):
				return
			case err != nil:
				statsFailed.Add(1)
				it.Error = err.Error()
			default:
				statsCreated.Add(1)
				it.OK = true
				it.TxHash = res.TxHash.Hex()
				it.PriceWei = res.PriceWei.String()
			}
			telAdd(it)
			refresh()
		}()
	})
	createBtn.Importance = widget.HighImportance
	cancelBtn := widget.NewButtonWithIcon("Cancel", theme.CancelIcon(), func() { modal.Hide() })

	fields := widget.NewForm(
		widget.NewFormItem("Room Name", nameE),
		widget.NewFormItem("Room Image (URL)", imageE),
		widget.NewFormItem("Room Description", descE),
		widget.NewFormItem("Room Location", locE),
		widget.NewFormItem("Room Price (cEUR)", container.NewBorder(nil, nil, nil, priceHint, priceE)),
	)
	content := container.NewVBox(fields, statusCard, container.NewHBox(cancelBtn, createBtn))
	modal = dialog.NewCustomWithoutButtons("Add Room", content, w)
	unwatch := watchMarket(refresh)
	modal.SetOnClosed(func() { unwatch(); form.Close() })
	modal.Resize(fyne.NewSize(560, 480))
	refresh()
	modal.Show()
}
