package finance

// Category is the accounting classification of a cost line. It is always
// computed from the cost's attribute values and never stored.
type Category string

const (
	// CategoryInvoiced reduces profit.
	CategoryInvoiced Category = "INVOICED"
	// CategoryPaidOnBehalf is a pass-through cost, excluded from profit.
	CategoryPaidOnBehalf Category = "PAID_ON_BEHALF"
	// CategoryNoInvoice is recorded but not formally invoiced, excluded from profit.
	CategoryNoInvoice Category = "NO_INVOICE"
)

// Attribute names carried over from the billing schema. The attribute set is
// defined per cost type; a missing attribute row is equivalent to "false".
const (
	AttrPaidOnBehalf = "Trả hộ"
	AttrNoInvoice    = "Ko hóa đơn"
)

const attrTrue = "true"

// AttributeValue is one sparse tag row attached to a cost.
type AttributeValue struct {
	AttributeName string
	Value         string
}

// Classify resolves the category of a cost from its attribute values.
// Paid-on-behalf takes precedence over no-invoice when both are set.
// Unknown or missing attributes always resolve to Invoiced.
func Classify(attrs []AttributeValue) Category {
	for _, a := range attrs {
		if a.AttributeName == AttrPaidOnBehalf && a.Value == attrTrue {
			return CategoryPaidOnBehalf
		}
	}
	for _, a := range attrs {
		if a.AttributeName == AttrNoInvoice && a.Value == attrTrue {
			return CategoryNoInvoice
		}
	}
	return CategoryInvoiced
}
