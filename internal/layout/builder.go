// Package layout provides declarative helpers that build and install view
// constraints: edge alignment, filling a parent, and chaining siblings.
package layout

import "github.com/jmylchreest/notibar/internal/view"

// Builder installs constraints on container views. The zero value is ready
// to use.
type Builder struct{}

// FillParent stretches v across parent on one axis, inset by margin on both
// sides. The constraints are installed on parent.
//
//	horizontal: |-margin-[v]-margin-|
func (Builder) FillParent(v, parent *view.View, margin int, vertically bool) []view.Constraint {
	lo, hi := view.AttrLeft, view.AttrRight
	if vertically {
		lo, hi = view.AttrTop, view.AttrBottom
	}
	cs := []view.Constraint{
		{Item: v, Attr: lo, ToItem: parent, ToAttr: lo, Constant: margin},
		{Item: parent, Attr: hi, ToItem: v, ToAttr: hi, Constant: margin},
	}
	parent.AddConstraints(cs...)
	return cs
}

// ViewsNextToEachOther places views one after another with margin between
// neighbours. Fewer than two views installs nothing.
//
//	horizontal: [a]-margin-[b]-margin-[c]
func (Builder) ViewsNextToEachOther(views []*view.View, container *view.View, margin int, vertically bool) []view.Constraint {
	if len(views) < 2 {
		return nil
	}
	lo, hi := view.AttrLeft, view.AttrRight
	if vertically {
		lo, hi = view.AttrTop, view.AttrBottom
	}
	cs := make([]view.Constraint, 0, len(views)-1)
	for i := 0; i < len(views)-1; i++ {
		cs = append(cs, view.Constraint{
			Item: views[i+1], Attr: lo, ToItem: views[i], ToAttr: hi, Constant: margin,
		})
	}
	container.AddConstraints(cs...)
	return cs
}

// AlignSameAttributes installs item.attr = toItem.attr + margin.
func (Builder) AlignSameAttributes(item, toItem view.Anchorable, container *view.View, attr view.Attribute, margin int) []view.Constraint {
	c := view.Constraint{Item: item, Attr: attr, ToItem: toItem, ToAttr: attr, Constant: margin}
	container.AddConstraints(c)
	return []view.Constraint{c}
}

// AlignVerticallyToLayoutGuide aligns v against the inner edge of a guide.
// With onTop the guide's bottom edge is matched to v's top; otherwise the
// guide's top edge is matched to v's bottom:
//
//	onTop:  guide.bottom = v.top + margin
//	bottom: guide.top    = v.bottom + margin
func (Builder) AlignVerticallyToLayoutGuide(v *view.View, onTop bool, guide view.Anchorable, container *view.View, margin int) []view.Constraint {
	guideAttr, viewAttr := view.AttrTop, view.AttrBottom
	if onTop {
		guideAttr, viewAttr = view.AttrBottom, view.AttrTop
	}
	c := view.Constraint{Item: guide, Attr: guideAttr, ToItem: v, ToAttr: viewAttr, Constant: margin}
	container.AddConstraints(c)
	return []view.Constraint{c}
}

// Size fixes the width and height of v. Non-positive values are skipped.
func (Builder) Size(v, container *view.View, width, height int) []view.Constraint {
	var cs []view.Constraint
	if width > 0 {
		cs = append(cs, view.Constraint{Item: v, Attr: view.AttrWidth, Constant: width})
	}
	if height > 0 {
		cs = append(cs, view.Constraint{Item: v, Attr: view.AttrHeight, Constant: height})
	}
	container.AddConstraints(cs...)
	return cs
}

// CenterY centers v vertically on other.
func (Builder) CenterY(v, other, container *view.View) []view.Constraint {
	c := view.Constraint{Item: v, Attr: view.AttrCenterY, ToItem: other, ToAttr: view.AttrCenterY}
	container.AddConstraints(c)
	return []view.Constraint{c}
}

// Height fixes the height of v.
func (b Builder) Height(v, container *view.View, height int) []view.Constraint {
	return b.Size(v, container, 0, height)
}

// Stack pins v below (or, with fromBottom, above) the given edge of parent
// with a fixed height, filling the parent's width. It is the building block
// for header and status rows.
func (b Builder) Stack(v, parent *view.View, height int, fromBottom bool) []view.Constraint {
	cs := b.FillParent(v, parent, 0, false)
	attr := view.AttrTop
	if fromBottom {
		attr = view.AttrBottom
	}
	cs = append(cs, b.AlignSameAttributes(v, parent, parent, attr, 0)...)
	cs = append(cs, b.Height(v, parent, height)...)
	return cs
}
