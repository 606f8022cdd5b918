package editor

import (
	"strings"

	"github.com/dd0wney/cluso-classdiagram/pkg/form"
	"github.com/dd0wney/cluso-classdiagram/pkg/uml"
	"github.com/dd0wney/cluso-classdiagram/pkg/validation"
)

func commitAttribute(rec uml.ClassRecord, d form.AttributeDraft) (uml.ClassRecord, error) {
	const op = "CommitAttribute"

	d.Visibility = strings.TrimSpace(d.Visibility)
	d.Name = strings.TrimSpace(d.Name)
	d.Type = strings.TrimSpace(d.Type)

	if err := checkDraft(op, rec.ID, d); err != nil {
		return uml.ClassRecord{}, err
	}

	// Tags have already accepted these values
	vis, _ := uml.ParseVisibility(d.Visibility)
	typ, _ := uml.ParseAttributeType(d.Type)
	attr := uml.Attribute{Visibility: vis, Name: d.Name, Type: typ}

	index, editing := d.Target.Index()
	if editing && (index < 0 || index >= len(rec.Attributes)) {
		return uml.ClassRecord{}, uml.NewError(op).Class(rec.ID).Attribute(attr.Name).Index(index).Cause(uml.ErrIndexOutOfRange).Build()
	}

	// Position, not name, identifies the member being edited
	if i := rec.AttributeIndex(attr.Name); i >= 0 && !(editing && i == index) {
		return uml.ClassRecord{}, uml.NewError(op).Class(rec.ID).Attribute(attr.Name).Index(i).Cause(uml.ErrDuplicateName).Build()
	}

	out := rec.Clone()
	if editing {
		out.Attributes[index] = attr
	} else {
		out.Attributes = append(out.Attributes, attr)
	}
	return out, nil
}

func commitMethod(rec uml.ClassRecord, d form.MethodDraft) (uml.ClassRecord, error) {
	const op = "CommitMethod"

	d.Visibility = strings.TrimSpace(d.Visibility)
	d.Name = strings.TrimSpace(d.Name)
	d.ReturnType = strings.TrimSpace(d.ReturnType)

	if err := checkDraft(op, rec.ID, d); err != nil {
		return uml.ClassRecord{}, err
	}

	vis, _ := uml.ParseVisibility(d.Visibility)
	ret, _ := uml.ParseReturnType(d.ReturnType)
	method := uml.Method{Visibility: vis, Name: d.Name, ReturnType: ret, Args: uml.ParseArgs(d.Args)}

	index, editing := d.Target.Index()
	if editing && (index < 0 || index >= len(rec.Methods)) {
		return uml.ClassRecord{}, uml.NewError(op).Class(rec.ID).Method(method.Name).Index(index).Cause(uml.ErrIndexOutOfRange).Build()
	}

	// Uniqueness is by name alone; overloading by signature is not supported
	if i := rec.MethodIndex(method.Name); i >= 0 && !(editing && i == index) {
		return uml.ClassRecord{}, uml.NewError(op).Class(rec.ID).Method(method.Name).Index(i).Cause(uml.ErrDuplicateName).Build()
	}

	out := rec.Clone()
	if editing {
		out.Methods[index] = method
	} else {
		out.Methods = append(out.Methods, method)
	}
	return out, nil
}

// checkDraft reports missing fields before values outside an enumeration.
func checkDraft(op string, class uml.Identity, draft any) error {
	report, err := validation.CheckDraft(draft)
	if err != nil {
		return uml.NewError(op).Class(class).Cause(err).Build()
	}
	if len(report.Missing) > 0 {
		return uml.NewError(op).Class(class).Fields(report.Missing...).Cause(uml.ErrIncompleteFields).Build()
	}
	if len(report.Invalid) > 0 {
		return uml.NewError(op).Class(class).Fields(report.Invalid...).Cause(uml.ErrInvalidValue).Build()
	}
	return nil
}
