// Package event provides definitions for global DOM
// events that are dispatched by the `HX-Trigger`
// header in HTMX requests.
package event

import (
	"github.com/a-h/templ"
	"github.com/angelofallars/htmx-go"
)

// Event is a client-side event that can be triggered
// on the server.
//
// Event names should be snake-case so Alpine.js
// can parse them correctly.
type Event string

// Event satisfies [fmt.Stringer]
func (e Event) String() string { return string(e) }

// Listen returns an Alpine.js x-on attribute with
// the provided JavaScript callback text.
//
// Format:
//
//	x-on:<eventName>.window="<code>"
func (e Event) Listen(jsCode string) templ.Attributes {
	return templ.Attributes{
		e.Attr(): jsCode,
	}
}

// Attr returns the attribute name Listen uses.
func (e Event) Attr() string {
	return "x-on:" + string(e) + ".window"
}

// SetErrMessage carries the text of the error banner. An empty
// message hides it.
const SetErrMessage Event = "set-err-message"

func TriggerSetErrMessage(message string) htmx.EventTrigger {
	return htmx.TriggerDetail(SetErrMessage.String(), message)
}

// ShowModal opens the file preview modal.
const ShowModal Event = "show-modal"

var TriggerShowModal = htmx.Trigger(ShowModal.String())

// FileUploaded tells the new bill form that a file is attached.
const FileUploaded Event = "file-uploaded"

func TriggerFileUploaded(fileName string) htmx.EventTrigger {
	return htmx.TriggerDetail(FileUploaded.String(), fileName)
}
