package memdom_test

import (
	"testing"

	"github.com/MarkGodwin/hass-swipe-navigation/pkg/dom"
	"github.com/MarkGodwin/hass-swipe-navigation/pkg/memdom"
)

// --- Tree and query tests ---

func TestDocument_QuerySelector(t *testing.T) {
	doc := memdom.NewDocument()
	shell := doc.CreateElement("home-assistant")
	doc.Body().AppendChild(shell)

	if got := doc.QuerySelector("home-assistant"); got != dom.Element(shell) {
		t.Errorf("QuerySelector returned %v, want the shell element", got)
	}
	if got := doc.QuerySelector("missing-element"); got != nil {
		t.Errorf("QuerySelector for absent tag = %v, want nil", got)
	}
}

func TestDocument_QuerySelectorIsStable(t *testing.T) {
	doc := memdom.NewDocument()
	shell := doc.CreateElement("home-assistant")
	doc.Body().AppendChild(shell)

	first := doc.QuerySelector("home-assistant")
	second := doc.QuerySelector("home-assistant")
	if first != second {
		t.Error("expected repeated lookups to return the identical element")
	}
}

func TestDocument_InvalidSelectorMatchesNothing(t *testing.T) {
	doc := memdom.NewDocument()
	if got := doc.QuerySelector("<<<"); got != nil {
		t.Errorf("invalid selector returned %v, want nil", got)
	}
}

func TestElement_SelectorAlternatives(t *testing.T) {
	doc := memdom.NewDocument()
	layout := doc.CreateElement("div")
	layout.SetAttr("id", "layout")
	doc.Body().AppendChild(layout)

	if got := doc.QuerySelector("ha-app-layout, div#layout"); got != dom.Element(layout) {
		t.Errorf("selector group matched %v, want div#layout", got)
	}
}

func TestShadow_IsolatedFromLightQueries(t *testing.T) {
	doc := memdom.NewDocument()
	host := doc.CreateElement("home-assistant")
	doc.Body().AppendChild(host)

	inner := doc.CreateElement("home-assistant-main")
	host.AttachShadow().AppendChild(inner)

	if got := doc.QuerySelector("home-assistant-main"); got != nil {
		t.Errorf("light query reached into a shadow tree: %v", got)
	}
	if got := host.ShadowRoot().QuerySelector("home-assistant-main"); got != dom.Element(inner) {
		t.Errorf("shadow query = %v, want the inner element", got)
	}
}

func TestElement_Matches(t *testing.T) {
	doc := memdom.NewDocument()
	el := doc.CreateElement("ha-slider")
	el.AddClass("round")

	if !el.Matches("ha-slider") {
		t.Error("expected tag selector to match")
	}
	if !el.Matches("a, button, ha-slider") {
		t.Error("expected selector group to match")
	}
	if !el.Matches(".round") {
		t.Error("expected class selector to match")
	}
	if el.Matches("button") {
		t.Error("expected mismatched tag not to match")
	}
}

func TestElement_IsConnected(t *testing.T) {
	doc := memdom.NewDocument()
	el := doc.CreateElement("div")
	if el.IsConnected() {
		t.Error("detached element reports connected")
	}

	doc.Body().AppendChild(el)
	if !el.IsConnected() {
		t.Error("attached element reports disconnected")
	}

	el.Remove()
	if el.IsConnected() {
		t.Error("removed element reports connected")
	}
}

func TestElement_IsConnectedThroughShadows(t *testing.T) {
	doc := memdom.NewDocument()
	host := doc.CreateElement("home-assistant")
	doc.Body().AppendChild(host)
	inner := doc.CreateElement("hui-root")
	host.AttachShadow().AppendChild(inner)
	leaf := doc.CreateElement("div")
	inner.AttachShadow().AppendChild(leaf)

	if !leaf.IsConnected() {
		t.Error("element nested in connected shadows reports disconnected")
	}

	host.Remove()
	if leaf.IsConnected() {
		t.Error("element under a detached host reports connected")
	}
}

func TestElement_ChildrenAndClasses(t *testing.T) {
	doc := memdom.NewDocument()
	tabs := doc.CreateElement("paper-tabs")
	doc.Body().AppendChild(tabs)

	a := doc.CreateElement("paper-tab")
	b := doc.CreateElement("paper-tab")
	b.AddClass("iron-selected")
	tabs.AppendChild(a)
	tabs.AppendChild(b)

	children := tabs.Children()
	if len(children) != 2 {
		t.Fatalf("len(Children) = %d, want 2", len(children))
	}
	if children[0].HasClass("iron-selected") {
		t.Error("first tab should not be selected")
	}
	if !children[1].HasClass("iron-selected") {
		t.Error("second tab should be selected")
	}

	b.RemoveClass("iron-selected")
	if b.HasClass("iron-selected") {
		t.Error("class survived removal")
	}
}

func TestElement_ReplaceChildren(t *testing.T) {
	doc := memdom.NewDocument()
	view := doc.CreateElement("div")
	doc.Body().AppendChild(view)
	old := doc.CreateElement("hui-card")
	view.AppendChild(old)

	fresh := doc.CreateElement("hui-card")
	fresh.AddClass("fresh")
	view.ReplaceChildren(fresh)

	children := view.Children()
	if len(children) != 1 || !children[0].HasClass("fresh") {
		t.Errorf("children after replace = %v", children)
	}
	if old.IsConnected() {
		t.Error("replaced child still connected")
	}
}

func TestElement_Text(t *testing.T) {
	doc := memdom.NewDocument()
	tab := doc.CreateElement("paper-tab")
	tab.SetText("Energy")
	if got := tab.Text(); got != "Energy" {
		t.Errorf("Text() = %q, want %q", got, "Energy")
	}
}

func TestParse(t *testing.T) {
	doc, err := memdom.Parse(`<html><body><home-assistant></home-assistant></body></html>`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if doc.QuerySelector("home-assistant") == nil {
		t.Error("parsed document is missing the shell element")
	}
	if doc.Body() == nil {
		t.Error("parsed document has no body")
	}
}

// --- Style tests ---

func TestElement_Styles(t *testing.T) {
	doc := memdom.NewDocument()
	view := doc.CreateElement("div")

	view.SetStyle("transform", "translate(10px, 0)")
	if got := view.Style("transform"); got != "translate(10px, 0)" {
		t.Errorf("Style = %q", got)
	}

	view.SetStyle("transform", "")
	if got := view.Style("transform"); got != "" {
		t.Errorf("cleared style = %q, want empty", got)
	}
}

func TestComputedStyle_Display(t *testing.T) {
	doc := memdom.NewDocument()
	tab := doc.CreateElement("paper-tab")

	if got := tab.ComputedStyle("display"); got != "block" {
		t.Errorf("display = %q, want block", got)
	}

	tab.SetAttr("hidden", "")
	if got := tab.ComputedStyle("display"); got != "none" {
		t.Errorf("hidden display = %q, want none", got)
	}

	tab.SetStyle("display", "flex")
	if got := tab.ComputedStyle("display"); got != "flex" {
		t.Errorf("inline display = %q, want flex", got)
	}
}

func TestComputedStyle_DirectionInherits(t *testing.T) {
	doc := memdom.NewDocument()
	host := doc.CreateElement("home-assistant")
	doc.Body().AppendChild(host)
	inner := doc.CreateElement("paper-tabs")
	host.AttachShadow().AppendChild(inner)

	if got := inner.ComputedStyle("direction"); got != "ltr" {
		t.Errorf("direction = %q, want ltr default", got)
	}

	doc.Body().SetAttr("dir", "rtl")
	if got := inner.ComputedStyle("direction"); got != "rtl" {
		t.Errorf("direction = %q, want rtl inherited across the shadow boundary", got)
	}

	inner.SetStyle("direction", "ltr")
	if got := inner.ComputedStyle("direction"); got != "ltr" {
		t.Errorf("direction = %q, want own style to win", got)
	}
}

func TestDocument_SetDirection(t *testing.T) {
	doc := memdom.NewDocument()
	el := doc.CreateElement("hui-view")
	doc.Body().AppendChild(el)

	doc.SetDirection("rtl")
	if got := el.ComputedStyle("direction"); got != "rtl" {
		t.Errorf("direction = %q, want rtl", got)
	}

	doc.SetDirection("")
	if got := el.ComputedStyle("direction"); got != "ltr" {
		t.Errorf("direction after clear = %q, want ltr", got)
	}
}

func TestDocument_InnerWidth(t *testing.T) {
	doc := memdom.NewDocument()
	doc.SetInnerWidth(1280)
	if got := doc.InnerWidth(); got != 1280 {
		t.Errorf("InnerWidth = %g, want 1280", got)
	}
}
