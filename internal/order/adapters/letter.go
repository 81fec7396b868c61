package adapters

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/MALLLAG/Domain-Modeling-Made-Functional/internal/order/domain"
	"github.com/MALLLAG/Domain-Modeling-Made-Functional/internal/order/placing"
)

const letterTemplate = `Dear {{.FirstName}} {{.LastName}},

Thank you for your order {{.OrderID}}.

{{range .Lines}}  {{.Code}}  x{{.Quantity}}  {{.LinePrice}}
{{end}}
Amount to bill: {{.AmountToBill}}

Your order will ship to {{.City}} {{.Zip}}.
`

type letterData struct {
	FirstName    string
	LastName     string
	OrderID      string
	Lines        []letterLine
	AmountToBill string
	City         string
	Zip          string
}

type letterLine struct {
	Code      string
	Quantity  string
	LinePrice string
}

// LetterRenderer builds the acknowledgment letter body from a priced
// order. Rendering is pure: same order, same letter.
type LetterRenderer struct {
	tmpl *template.Template
}

func NewLetterRenderer() *LetterRenderer {
	return &LetterRenderer{
		tmpl: template.Must(template.New("acknowledgment").Parse(letterTemplate)),
	}
}

func (r *LetterRenderer) Create(order domain.PricedOrder) placing.Letter {
	lines := make([]letterLine, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, letterLine{
			Code:      l.ProductCode.String(),
			Quantity:  l.Quantity.Value().String(),
			LinePrice: l.LinePrice.Amount().StringFixed(2),
		})
	}
	data := letterData{
		FirstName:    order.CustomerInfo.Name.FirstName.String(),
		LastName:     order.CustomerInfo.Name.LastName.String(),
		OrderID:      order.OrderID.String(),
		Lines:        lines,
		AmountToBill: order.AmountToBill.Amount().StringFixed(2),
		City:         order.ShippingAddress.City.String(),
		Zip:          order.ShippingAddress.ZipCode.String(),
	}

	var b strings.Builder
	if err := r.tmpl.Execute(&b, data); err != nil {
		// The template is static and the data plain strings, so this is
		// unreachable in practice; fall back to a minimal letter.
		return placing.Letter{Body: fmt.Sprintf("Thank you for your order %s.", data.OrderID)}
	}
	return placing.Letter{Body: b.String()}
}
