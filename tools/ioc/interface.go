package ioc

// Container 按名称登记组件，Init 时统一初始化
type Container interface {
	RegisterContainer(name string, obj Object)
	GetMapContainer(name string) any
	Init() error
}

// Object 可被容器初始化的组件
type Object interface {
	Init() error
}
