package engine

import (
	"time"

	"golang.org/x/net/html"

	"github.com/goliatone/go-domtmpl/pkg/dom"
	"github.com/goliatone/go-domtmpl/pkg/scope"
)

func (e *Engine) renderPlaceholder(n *html.Node, d Directive, ctx scope.Context) {
	defer dom.Remove(n)

	if d.Path == "" {
		e.logger.Debug("placeholder without a variable name", "tag", n.Data)
		return
	}
	path := d.Path
	value, ok := e.lookup(ctx, path)
	for _, alt := range d.Alternates {
		if ok {
			break
		}
		path = alt
		value, ok = e.lookup(ctx, path)
	}
	if !ok || value == nil {
		return
	}

	if fn, ok := asElementFunc(value); ok {
		fn(n)
		return
	}
	if v, ok := value.(Content); ok {
		switch v.Kind {
		case ContentHTML:
			e.insertMarkup(n, v.Value)
		case ContentText:
			insertText(n, v.Value)
		}
		return
	}

	switch d.Mode {
	case ModeHTML:
		e.insertMarkup(n, scope.String(value))
	case ModeDate:
		insertText(n, e.formatDate(path, value))
	default:
		insertText(n, scope.String(value))
	}
}

func (e *Engine) applyConditional(n *html.Node, d Directive, ctx scope.Context) {
	if d.Path == "" {
		e.logger.Debug("conditional without a condition", "tag", n.Data)
		dom.Remove(n)
		return
	}
	value, ok := e.lookup(ctx, d.Path)
	keep := scope.Truthy(value, ok)
	if d.Negate {
		keep = !keep
	}
	if !keep {
		dom.Remove(n)
		return
	}
	e.applyChildren(n, ctx)
	dom.Unwrap(n)
}

func (e *Engine) applyLoop(n *html.Node, d Directive, ctx scope.Context) {
	defer dom.Remove(n)

	if d.Path == "" || d.Item == "" {
		e.logger.Debug("loop without items or item name", "tag", n.Data, "items", d.Path, "item", d.Item)
		return
	}
	value, ok := e.lookup(ctx, d.Path)
	if !ok {
		return
	}
	entries, iterable := scope.Entries(value)
	if !iterable {
		e.logger.Debug("loop over a non-iterable value", "items", d.Path)
		return
	}

	body := dom.Children(n)
	for _, entry := range entries {
		bindings := []scope.Binding{{Name: d.Item, Value: entry.Value}}
		if d.Index != "" {
			bindings = append(bindings, scope.Binding{Name: d.Index, Value: entry.Key})
		}
		derived := scope.With(ctx, bindings...)

		clones := make([]*html.Node, 0, len(body))
		for _, child := range body {
			clone := dom.Clone(child)
			dom.InsertBefore(n, clone)
			clones = append(clones, clone)
		}
		for _, clone := range clones {
			e.Apply(clone, derived)
		}
	}
}

func (e *Engine) applyContent(n *html.Node, d Directive, ctx scope.Context) {
	dom.RemoveAttr(n, d.Marker)
	e.interpolate(n, d.Bindings, ctx)

	value, ok := e.lookup(ctx, d.Path)
	if !ok || value == nil {
		e.applyChildren(n, ctx)
		return
	}

	if fn, ok := asElementFunc(value); ok {
		existing := dom.Children(n)
		fn(n)
		for _, c := range existing {
			e.Apply(c, ctx)
		}
		return
	}

	switch v := value.(type) {
	case bool:
		if !v {
			dom.Remove(n)
			return
		}
	case Content:
		switch v.Kind {
		case ContentHTML:
			nodes, err := dom.ParseIn(n, v.Value)
			if err != nil {
				e.logger.Debug("invalid markup for bound element", "path", d.Path, "error", err)
				dom.ReplaceChildren(n, dom.Text(v.Value))
				return
			}
			dom.ReplaceChildren(n, nodes...)
			return
		case ContentText:
			dom.ReplaceChildren(n, dom.Text(v.Value))
			return
		case ContentVisibility:
			if !v.Visible {
				dom.Remove(n)
				return
			}
		}
	case scope.Context:
	default:
		if _, iterable := scope.Entries(value); !iterable {
			dom.ReplaceChildren(n, dom.Text(scope.String(value)))
			return
		}
	}
	e.applyChildren(n, ctx)
}

func (e *Engine) interpolate(n *html.Node, bindings []AttrBinding, ctx scope.Context) {
	for _, b := range bindings {
		if b.Marker != "" && b.Marker != b.Target {
			dom.RemoveAttr(n, b.Marker)
		}
		if b.Target == "" {
			continue
		}
		value, ok := e.lookup(ctx, b.Path)
		if !ok || value == nil {
			dom.RemoveAttr(n, b.Target)
			continue
		}
		switch v := value.(type) {
		case bool:
			setPresence(n, b.Target, v)
		case Content:
			if v.Kind == ContentVisibility {
				setPresence(n, b.Target, v.Visible)
				continue
			}
			dom.SetAttr(n, b.Target, v.Value)
		default:
			dom.SetAttr(n, b.Target, scope.String(v))
		}
	}
}

func (e *Engine) insertMarkup(n *html.Node, markup string) {
	if markup == "" {
		return
	}
	nodes, err := dom.ParseIn(n.Parent, markup)
	if err != nil {
		e.logger.Debug("invalid markup for placeholder", "error", err)
		insertText(n, markup)
		return
	}
	dom.InsertBefore(n, nodes...)
}

func (e *Engine) formatDate(path string, value any) string {
	raw := scope.String(value)
	if e.dates == nil {
		return raw
	}
	if t, ok := value.(time.Time); ok {
		return e.dates(t)
	}
	for _, layout := range e.dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return e.dates(t)
		}
	}
	e.logger.Debug("invalid date value", "path", path, "value", raw)
	return raw
}

func asElementFunc(value any) (ElementFunc, bool) {
	switch fn := value.(type) {
	case ElementFunc:
		return fn, fn != nil
	case func(*html.Node):
		return fn, fn != nil
	}
	return nil, false
}

func insertText(n *html.Node, s string) {
	if s == "" {
		return
	}
	dom.InsertBefore(n, dom.Text(s))
}

func setPresence(n *html.Node, key string, present bool) {
	if present {
		dom.SetAttr(n, key, "")
		return
	}
	dom.RemoveAttr(n, key)
}
