package view

// Solve resolves the frame of every view below root from the constraints
// installed anywhere in the tree. The root frame is taken as given.
//
// Resolution propagates equalities until nothing changes. When propagation
// stalls, labels contribute their intrinsic size: first heights for labels
// whose width is known, then widths for labels whose width is still free.
// Constraints referring to views outside the tree are ignored, and
// conflicting constraints resolve to whichever is applied first.
func Solve(root *View) {
	if root == nil {
		return
	}
	s := newSolver(root)
	s.run()
	s.commit()
}

type values struct {
	v  [AttrCenterY + 1]int
	ok [AttrCenterY + 1]bool
}

func (x *values) set(attr Attribute, val int) bool {
	if attr == AttrNone || x.ok[attr] {
		return false
	}
	x.v[attr] = val
	x.ok[attr] = true
	return true
}

func (x *values) get(attr Attribute) (int, bool) {
	return x.v[attr], x.ok[attr]
}

type solver struct {
	root        *View
	views       []*View
	vals        map[*View]*values
	constraints []Constraint
}

func newSolver(root *View) *solver {
	s := &solver{
		root: root,
		vals: make(map[*View]*values),
	}
	root.Walk(func(v *View) {
		s.views = append(s.views, v)
		s.vals[v] = &values{}
		s.constraints = append(s.constraints, v.constraints...)
	})

	rv := s.vals[root]
	for attr := AttrLeft; attr <= AttrCenterY; attr++ {
		rv.set(attr, attributeOf(root.frame, attr))
	}
	return s
}

func (s *solver) run() {
	for {
		changed := false
		for _, c := range s.constraints {
			if s.applyConstraint(c) {
				changed = true
			}
		}
		for _, v := range s.views {
			if s.derive(v) {
				changed = true
			}
		}
		if changed {
			continue
		}
		if s.intrinsicHeights() || s.intrinsicWidths() {
			continue
		}
		return
	}
}

// lookup returns the value of attr for item. valid is false when item is a
// view outside the tree being solved.
func (s *solver) lookup(item Anchorable, attr Attribute) (val int, known, valid bool) {
	if v, ok := item.(*View); ok {
		x, inTree := s.vals[v]
		if !inTree {
			return 0, false, false
		}
		val, known = x.get(attr)
		return val, known, true
	}
	if item == nil {
		return 0, false, false
	}
	return attributeOf(item.Frame(), attr), true, true
}

func (s *solver) assign(item Anchorable, attr Attribute, val int) bool {
	v, ok := item.(*View)
	if !ok {
		return false
	}
	x, inTree := s.vals[v]
	if !inTree {
		return false
	}
	return x.set(attr, val)
}

func (s *solver) applyConstraint(c Constraint) bool {
	if c.ToItem == nil {
		if _, _, valid := s.lookup(c.Item, c.Attr); !valid {
			return false
		}
		return s.assign(c.Item, c.Attr, c.Constant)
	}

	lv, lok, lvalid := s.lookup(c.Item, c.Attr)
	rv, rok, rvalid := s.lookup(c.ToItem, c.ToAttr)
	if !lvalid || !rvalid {
		return false
	}
	switch {
	case rok && !lok:
		return s.assign(c.Item, c.Attr, rv+c.Constant)
	case lok && !rok:
		return s.assign(c.ToItem, c.ToAttr, lv-c.Constant)
	}
	return false
}

func (s *solver) derive(v *View) bool {
	x := s.vals[v]
	h := deriveAxis(x, AttrLeft, AttrRight, AttrWidth, AttrCenterX)
	vert := deriveAxis(x, AttrTop, AttrBottom, AttrHeight, AttrCenterY)
	return h || vert
}

// deriveAxis fills in the remaining values of one axis once any two of
// start, end, size and center are known.
func deriveAxis(x *values, lo, hi, size, center Attribute) bool {
	changed := false
	for {
		l, lok := x.get(lo)
		r, rok := x.get(hi)
		w, wok := x.get(size)
		c, cok := x.get(center)

		step := false
		switch {
		case lok && wok && (!rok || !cok):
			step = x.set(hi, l+w)
			step = x.set(center, l+w/2) || step
		case rok && wok && !lok:
			step = x.set(lo, r-w)
		case lok && rok && !wok:
			step = x.set(size, r-l)
		case cok && wok && !lok:
			step = x.set(lo, c-w/2)
		case cok && lok && !wok:
			step = x.set(size, 2*(c-l))
		case cok && rok && !wok:
			step = x.set(size, 2*(r-c))
		}
		if !step {
			return changed
		}
		changed = true
	}
}

func (s *solver) intrinsicHeights() bool {
	changed := false
	for _, v := range s.views {
		if !v.label || v == s.root {
			continue
		}
		x := s.vals[v]
		w, wok := x.get(AttrWidth)
		if _, hok := x.get(AttrHeight); !wok || hok {
			continue
		}
		if x.set(AttrHeight, IntrinsicHeight(v, w)) {
			changed = true
		}
	}
	return changed
}

func (s *solver) intrinsicWidths() bool {
	changed := false
	for _, v := range s.views {
		if !v.label || v == s.root {
			continue
		}
		x := s.vals[v]
		if _, wok := x.get(AttrWidth); wok {
			continue
		}
		if x.set(AttrWidth, TextWidth(v.Text)) {
			changed = true
		}
	}
	return changed
}

// IntrinsicHeight returns the number of rows a label needs at width.
func IntrinsicHeight(v *View, width int) int {
	return len(v.TextLines(width))
}

func (s *solver) commit() {
	for _, v := range s.views {
		if v == s.root {
			continue
		}
		x := s.vals[v]
		v.frame = Rect{
			X:      x.v[AttrLeft],
			Y:      x.v[AttrTop],
			Width:  max(x.v[AttrWidth], 0),
			Height: max(x.v[AttrHeight], 0),
		}
	}
}
