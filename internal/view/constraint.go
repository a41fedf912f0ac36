package view

import "fmt"

// Attribute is an edge or dimension of an anchorable item.
type Attribute int

const (
	AttrNone Attribute = iota
	AttrLeft
	AttrRight
	AttrTop
	AttrBottom
	AttrWidth
	AttrHeight
	AttrCenterX
	AttrCenterY
)

var attributeNames = map[Attribute]string{
	AttrNone:    "none",
	AttrLeft:    "left",
	AttrRight:   "right",
	AttrTop:     "top",
	AttrBottom:  "bottom",
	AttrWidth:   "width",
	AttrHeight:  "height",
	AttrCenterX: "centerX",
	AttrCenterY: "centerY",
}

func (a Attribute) String() string {
	if name, ok := attributeNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Attribute(%d)", int(a))
}

// Anchorable is anything a constraint can refer to. Views are solved;
// any other Anchorable (a layout guide) is read as a fixed frame.
type Anchorable interface {
	Frame() Rect
}

// Constraint expresses Item.Attr = ToItem.ToAttr + Constant.
// A nil ToItem makes it a constant: Item.Attr = Constant.
type Constraint struct {
	Item     Anchorable
	Attr     Attribute
	ToItem   Anchorable
	ToAttr   Attribute
	Constant int
}

func (c Constraint) String() string {
	if c.ToItem == nil {
		return fmt.Sprintf("%s.%s = %d", itemName(c.Item), c.Attr, c.Constant)
	}
	return fmt.Sprintf("%s.%s = %s.%s %+d", itemName(c.Item), c.Attr, itemName(c.ToItem), c.ToAttr, c.Constant)
}

func itemName(a Anchorable) string {
	if v, ok := a.(*View); ok {
		return v.Name
	}
	return fmt.Sprintf("%T", a)
}

// attributeOf reads an attribute from a fixed frame.
func attributeOf(r Rect, attr Attribute) int {
	switch attr {
	case AttrLeft:
		return r.X
	case AttrRight:
		return r.Right()
	case AttrTop:
		return r.Y
	case AttrBottom:
		return r.Bottom()
	case AttrWidth:
		return r.Width
	case AttrHeight:
		return r.Height
	case AttrCenterX:
		return r.X + r.Width/2
	case AttrCenterY:
		return r.Y + r.Height/2
	default:
		return 0
	}
}
