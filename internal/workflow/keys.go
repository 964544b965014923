package workflow

// Top-level document keys
const (
	KeyActions = "WFWorkflowActions"

	KeyClientVersion              = "WFWorkflowClientVersion"
	KeyMinimumClientVersionString = "WFWorkflowMinimumClientVersionString"
	KeyMinimumClientVersion       = "WFWorkflowMinimumClientVersion"
)

// Action entry keys
const (
	KeyActionIdentifier = "WFWorkflowActionIdentifier"
	KeyActionParameters = "WFWorkflowActionParameters"
)

// Parameters with structural meaning
const (
	ParamUUID               = "UUID"
	ParamGroupingIdentifier = "GroupingIdentifier"
	ParamMenuPrompt         = "WFMenuPrompt"
	ParamMenuItems          = "WFMenuItems"
	ParamMenuDefault        = "WFMenuDefaultItem"
)

// MenuActionIdentifier is the choose-from-menu action
const MenuActionIdentifier = "is.workflow.actions.choosefrommenu"

// VersionKeys lists the version fields in priority order; the first one
// present wins.
var VersionKeys = []string{
	KeyClientVersion,
	KeyMinimumClientVersionString,
	KeyMinimumClientVersion,
}

// MetadataKeys is the allow-list of top-level fields accumulated as metadata
var MetadataKeys = []string{
	KeyMinimumClientVersion,
	KeyMinimumClientVersionString,
	KeyClientVersion,
	"WFWorkflowIcon",
	"WFWorkflowTypes",
	"WFWorkflowOutputContentItemClasses",
	"WFWorkflowInputContentItemClasses",
	"WFQuickActionSurfaces",
	"WFWorkflowHasShortcutInputVariables",
}
