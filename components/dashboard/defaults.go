package dashboard

const (
	// DefaultUserName is displayed when the session has no user or the user has no name.
	DefaultUserName = "Usuario"

	greetingPrefix = "Bienvenido, "
)

var defaultStats = []Stat{
	{Name: "Total Empleados", Value: "24", Icon: "users", Color: "text-blue-600", BgColor: "bg-blue-100"},
	{Name: "Productos Activos", Value: "156", Icon: "package", Color: "text-green-600", BgColor: "bg-green-100"},
	{Name: "Pedidos del Mes", Value: "89", Icon: "shopping-cart", Color: "text-purple-600", BgColor: "bg-purple-100"},
	{Name: "Clientes Registrados", Value: "342", Icon: "user-check", Color: "text-orange-600", BgColor: "bg-orange-100"},
}

var defaultQuickActions = []QuickAction{
	{Name: "Nuevo Empleado", Href: "/empleados/nuevo", Icon: "user-check", Color: "text-blue-600", BgColor: "bg-blue-100", RequiresModule: "empleados"},
	{Name: "Agregar Producto", Href: "/productos", Icon: "package", Color: "text-green-600", BgColor: "bg-green-100", RequiresModule: "productos"},
	{Name: "Nuevo Pedido", Href: "/pedidos", Icon: "shopping-cart", Color: "text-purple-600", BgColor: "bg-purple-100", RequiresModule: "pedidos"},
	{Name: "Sistema POS", Href: "/pos", Icon: "credit-card", Color: "text-orange-600", BgColor: "bg-orange-100", RequiresModule: "pos"},
}

var defaultActivity = []ActivityEntry{
	{Action: "Empleado agregado", User: "Ana García", Time: "Hace 2 horas", Type: ActivitySuccess},
	{Action: "Producto actualizado", User: "Carlos López", Time: "Hace 4 horas", Type: ActivityInfo},
	{Action: "Pedido completado", User: "María Rodríguez", Time: "Hace 6 horas", Type: ActivitySuccess},
	{Action: "Cliente registrado", User: "Juan Pérez", Time: "Hace 8 horas", Type: ActivityInfo},
}

var defaultStatus = []StatusIndicator{
	{Title: "Sistema Operativo", Description: "Todos los servicios funcionando correctamente", Icon: "trending-up", Color: "text-green-600", BgColor: "bg-green-100"},
	{Title: "Base de Datos", Description: "Conexión estable y funcionando", Icon: "dollar-sign", Color: "text-green-600", BgColor: "bg-green-100"},
}

// DefaultStats returns a copy of the built-in stat cards.
func DefaultStats() []Stat {
	return append([]Stat{}, defaultStats...)
}

// DefaultQuickActions returns a copy of the built-in quick actions.
func DefaultQuickActions() []QuickAction {
	return append([]QuickAction{}, defaultQuickActions...)
}

// DefaultActivity returns a copy of the placeholder activity feed.
func DefaultActivity() []ActivityEntry {
	return append([]ActivityEntry{}, defaultActivity...)
}

// DefaultStatus returns a copy of the system status rows.
func DefaultStatus() []StatusIndicator {
	return append([]StatusIndicator{}, defaultStatus...)
}

// DefaultContent bundles the built-in tables into a content document.
func DefaultContent() Content {
	return Content{
		Version:      ContentVersion,
		Stats:        DefaultStats(),
		QuickActions: DefaultQuickActions(),
		Activity:     DefaultActivity(),
		Status:       DefaultStatus(),
	}
}
