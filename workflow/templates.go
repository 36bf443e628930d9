package workflow

// Template is a fixed ticket category. It decides which extra fields the
// form collects and how the detail view renders.
type Template struct {
	Name string
	Icon string
}

const (
	TemplateCountCorrection     = "Count Correction"
	TemplateMarkdownRequest     = "Markdown Request"
	TemplateImprestSubmission   = "Imprest Submission"
	TemplateConsumablesRequest  = "Consumables Request"
	TemplateInventoryAdjustment = "Inventory Adjustment"
	TemplateOtherRequest        = "Other Request"
)

// Templates is the canonical catalog, in picker order.
var Templates = []Template{
	{Name: TemplateCountCorrection, Icon: "tag"},
	{Name: TemplateMarkdownRequest, Icon: "tag"},
	{Name: TemplateImprestSubmission, Icon: "check"},
	{Name: TemplateConsumablesRequest, Icon: "truck"},
	{Name: TemplateInventoryAdjustment, Icon: "list"},
	{Name: TemplateOtherRequest, Icon: "cube"},
}

// KnownTemplate reports whether name is part of the catalog.
func KnownTemplate(name string) bool {
	for _, t := range Templates {
		if t.Name == name {
			return true
		}
	}
	return false
}
