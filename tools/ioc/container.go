package ioc

// ConController 业务实现容器，Api 路由处理器容器
var ConController Container = NewMapContainer("containerMap")

var Api Container = NewMapContainer("apiContainer")
