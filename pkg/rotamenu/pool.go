package rotamenu

import (
	"fmt"

	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/constants"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/internal"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/storage"
)

// Pool is a fixed-capacity slot allocator for one item type.
// Slots are allocated once; Get hands out the most recently freed slot and
// Put returns it zeroed. Pointers into the pool stay valid because the backing
// slice never grows.
type Pool[T any] struct {
	name  string
	slots []T
	inUse []bool
	free  []int // stack of free slot indices
}

func NewPool[T any](name string, size int) *Pool[T] {
	if size < 0 {
		size = 0
	}
	p := &Pool[T]{
		name:  name,
		slots: make([]T, size),
		inUse: make([]bool, size),
		free:  make([]int, size),
	}
	for i := range p.free {
		p.free[i] = size - 1 - i
	}
	return p
}

// Get reserves a slot, returning its address and index.
func (p *Pool[T]) Get() (*T, int, error) {
	if len(p.free) == 0 {
		internal.GetInternalLogger().Warn("Item pool exhausted", "pool", p.name, "capacity", len(p.slots))
		return nil, -1, fmt.Errorf("%s: %w", p.name, ErrPoolExhausted)
	}
	i := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	p.inUse[i] = true
	return &p.slots[i], i, nil
}

// Put zeroes slot i and makes it available again. Releasing a free or
// out-of-range slot does nothing.
func (p *Pool[T]) Put(i int) {
	if i < 0 || i >= len(p.slots) || !p.inUse[i] {
		return
	}
	var zero T
	p.slots[i] = zero
	p.inUse[i] = false
	p.free = append(p.free, i)
}

func (p *Pool[T]) Cap() int { return len(p.slots) }

// InUse returns the number of reserved slots.
func (p *Pool[T]) InUse() int { return len(p.slots) - len(p.free) }

// PoolSizes is the number of slots per item type.
type PoolSizes struct {
	Text   int
	Button int
	Value  int
	Files  int
	Image  int
}

// DefaultPoolSizes fits the busiest stock page of a 128x64 panel.
func DefaultPoolSizes() PoolSizes {
	return PoolSizes{
		Text:   20,
		Button: 20,
		Value:  20,
		Files:  2,
		Image:  4,
	}
}

// Pools holds one pool per concrete item type, and the collaborators the
// items it creates will use.
type Pools struct {
	env    *Env
	text   *Pool[TextMenuItem]
	button *Pool[ButtonMenuItem]
	value  *Pool[ValueMenuItem]
	files  *Pool[FilesMenuItem]
	image  *Pool[ImageMenuItem]
}

func NewPools(env *Env, sizes PoolSizes) *Pools {
	if env == nil {
		env = &Env{}
	}
	return &Pools{
		env:    env,
		text:   NewPool[TextMenuItem]("text", sizes.Text),
		button: NewPool[ButtonMenuItem]("button", sizes.Button),
		value:  NewPool[ValueMenuItem]("value", sizes.Value),
		files:  NewPool[FilesMenuItem]("files", sizes.Files),
		image:  NewPool[ImageMenuItem]("image", sizes.Image),
	}
}

// Env returns the collaborators shared by items from these pools.
func (p *Pools) Env() *Env { return p.env }

// InUse returns the total number of reserved slots across all pools.
func (p *Pools) InUse() int {
	return p.text.InUse() + p.button.InUse() + p.value.InUse() + p.files.InUse() + p.image.InUse()
}

// Layout is the placement shared by every item type.
type Layout struct {
	Row        int16
	Column     int16
	Width      int16 // 0 means measure the content on first layout
	Align      constants.Alignment
	Font       constants.FontNumber
	Visibility constants.Visibility
}

func (p *Pools) NewText(l Layout, text string) (*TextMenuItem, error) {
	checkLayout(l)
	item, slot, err := p.text.Get()
	if err != nil {
		return nil, err
	}
	item.itemBase = newItemBase(l, p.env, slot)
	item.text = text
	item.pool = p.text
	return item, nil
}

// NewButton creates a button whose command template is expanded with file.
func (p *Pools) NewButton(l Layout, text, command, file string) (*ButtonMenuItem, error) {
	checkLayout(l)
	item, slot, err := p.button.Get()
	if err != nil {
		return nil, err
	}
	item.itemBase = newItemBase(l, p.env, slot)
	item.text = text
	item.command = command
	item.file = file
	item.cmd = internal.NewBuffer(constants.MaxCommandLength)
	item.pool = p.button
	return item, nil
}

// NewValue creates a field mirroring the value at index, shown with decimals places.
func (p *Pools) NewValue(l Layout, index uint, decimals uint8, adjustable bool) (*ValueMenuItem, error) {
	checkLayout(l)
	item, slot, err := p.value.Get()
	if err != nil {
		return nil, err
	}
	item.itemBase = newItemBase(l, p.env, slot)
	item.index = index
	item.decimals = decimals
	item.adjustable = adjustable
	item.pool = p.value
	return item, nil
}

// NewFiles creates a browser showing lines entries of dir at a time.
func (p *Pools) NewFiles(l Layout, lines uint, command, dir string) (*FilesMenuItem, error) {
	checkLayout(l)
	item, slot, err := p.files.Get()
	if err != nil {
		return nil, err
	}
	if lines == 0 {
		lines = 1
	}
	item.itemBase = newItemBase(l, p.env, slot)
	item.lines = lines
	item.command = command
	item.dir = internal.NewBuffer(constants.MaxFilenameLength)
	item.dir.Copy(storage.Clean(dir))
	if item.dir.Truncated() {
		internal.GetInternalLogger().Warn("File browser directory truncated", "dir", dir)
	}
	item.initialDir = storage.Clean(item.dir.String())
	item.dir.Copy(item.initialDir)
	item.cmd = internal.NewBuffer(constants.MaxCommandLength)
	item.pool = p.files
	item.EnterDirectory()
	return item, nil
}

// NewImage creates a bitmap item. Alignment and font are ignored.
func (p *Pools) NewImage(l Layout, fileName string) (*ImageMenuItem, error) {
	checkLayout(l)
	item, slot, err := p.image.Get()
	if err != nil {
		return nil, err
	}
	l.Align = constants.AlignLeft
	item.itemBase = newItemBase(l, p.env, slot)
	item.fileName = internal.NewBuffer(constants.MaxFilenameLength)
	item.fileName.Copy(fileName)
	if item.fileName.Truncated() {
		internal.GetInternalLogger().Warn("Image file name truncated", "file", fileName)
	}
	item.pool = p.image
	return item, nil
}
