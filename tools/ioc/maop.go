package ioc

import (
	"fmt"
	"sort"
)

type MapContainer struct {
	name    string
	storage map[string]Object
}

func NewMapContainer(name string) *MapContainer {
	return &MapContainer{
		name:    name,
		storage: make(map[string]Object),
	}
}

func (m *MapContainer) RegisterContainer(name string, obj Object) {
	m.storage[name] = obj
}

func (m *MapContainer) GetMapContainer(name string) any {
	obj, ok := m.storage[name]
	if !ok {
		return nil
	}
	return obj
}

// Init 按名称顺序初始化，保证路由注册顺序稳定
func (m *MapContainer) Init() error {
	names := make([]string, 0, len(m.storage))
	for name := range m.storage {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := m.storage[name].Init(); err != nil {
			return fmt.Errorf("%s: init %s: %w", m.name, name, err)
		}
	}
	return nil
}
