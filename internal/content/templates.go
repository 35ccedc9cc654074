package content

// StructureKind classifies a format's document shape for the binder layer.
type StructureKind string

const (
	StructureEmail        StructureKind = "email"
	StructureDocument     StructureKind = "document"
	StructurePresentation StructureKind = "presentation"
	StructureSpreadsheet  StructureKind = "spreadsheet"
	StructureImage        StructureKind = "image"
	StructureDiagram      StructureKind = "diagram"
)

// formatTemplate is a format's ordered section-name list and structure kind.
type formatTemplate struct {
	sections []string
	kind     StructureKind
}

// formatTemplates maps every supported output format (see
// internal/request.SupportedFormats) to its section layout. Variant
// extensions of the same family (e.g. doc/docx/docm) share a template.
var formatTemplates = map[string]formatTemplate{
	"eml": {[]string{"subject", "greeting", "body", "closing", "signature"}, StructureEmail},
	"msg": {[]string{"subject", "greeting", "body", "closing", "signature"}, StructureEmail},

	"pptx": {[]string{"title", "overview", "technical_details", "configuration", "implementation", "security"}, StructurePresentation},
	"ppt":  {[]string{"title", "overview", "technical_details", "configuration", "implementation", "security"}, StructurePresentation},
	"odp":  {[]string{"title", "overview", "technical_details", "configuration", "implementation", "security"}, StructurePresentation},

	"pdf":  {[]string{"title", "executive_summary", "technical_specifications", "implementation_plan", "security_considerations"}, StructureDocument},
	"docx": {[]string{"title", "introduction", "technical_details", "configuration", "implementation", "conclusion"}, StructureDocument},
	"doc":  {[]string{"title", "introduction", "technical_details", "configuration", "implementation", "conclusion"}, StructureDocument},
	"docm": {[]string{"title", "introduction", "technical_details", "configuration", "implementation", "conclusion"}, StructureDocument},
	"rtf":  {[]string{"title", "introduction", "technical_details", "configuration", "implementation", "conclusion"}, StructureDocument},
	"odt":  {[]string{"title", "introduction", "technical_details", "configuration", "implementation", "conclusion"}, StructureDocument},
	"odf":  {[]string{"title", "introduction", "technical_details", "configuration", "implementation", "conclusion"}, StructureDocument},

	"xlsx": {[]string{"data_sheet", "configuration_sheet", "credentials_sheet"}, StructureSpreadsheet},
	"xls":  {[]string{"data_sheet", "configuration_sheet", "credentials_sheet"}, StructureSpreadsheet},
	"xlsm": {[]string{"data_sheet", "configuration_sheet", "credentials_sheet"}, StructureSpreadsheet},
	"xlsb": {[]string{"data_sheet", "configuration_sheet", "credentials_sheet"}, StructureSpreadsheet},
	"xltm": {[]string{"data_sheet", "configuration_sheet", "credentials_sheet"}, StructureSpreadsheet},
	"ods":  {[]string{"data_sheet", "configuration_sheet", "credentials_sheet"}, StructureSpreadsheet},

	"png":  {[]string{"title", "description", "technical_details"}, StructureImage},
	"jpg":  {[]string{"title", "description", "technical_details"}, StructureImage},
	"jpeg": {[]string{"title", "description", "technical_details"}, StructureImage},
	"bmp":  {[]string{"title", "description", "technical_details"}, StructureImage},

	"vsdx": {[]string{"title", "overview", "technical_architecture", "configuration", "implementation"}, StructureDiagram},
	"vsd":  {[]string{"title", "overview", "technical_architecture", "configuration", "implementation"}, StructureDiagram},
	"vsdm": {[]string{"title", "overview", "technical_architecture", "configuration", "implementation"}, StructureDiagram},
	"vssx": {[]string{"title", "overview", "technical_architecture", "configuration", "implementation"}, StructureDiagram},
	"vssm": {[]string{"title", "overview", "technical_architecture", "configuration", "implementation"}, StructureDiagram},
	"vstx": {[]string{"title", "overview", "technical_architecture", "configuration", "implementation"}, StructureDiagram},
	"vstm": {[]string{"title", "overview", "technical_architecture", "configuration", "implementation"}, StructureDiagram},
}

// defaultTemplate is used for any supported format without a dedicated
// entry above (defensive default; every SupportedFormats entry currently
// has one).
var defaultTemplate = formatTemplate{
	sections: []string{"title", "executive_summary", "technical_specifications", "implementation_plan", "security_considerations"},
	kind:     StructureDocument,
}

func templateFor(format string) formatTemplate {
	if t, ok := formatTemplates[format]; ok {
		return t
	}
	return defaultTemplate
}

// configSectionCandidates names section identifiers preferred as the
// credential-embedding target, tried in order.
var configSectionCandidates = []string{
	"configuration", "configuration_sheet", "technical_details", "implementation", "security", "setup",
}
