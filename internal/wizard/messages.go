package wizard

// User-facing text. Format verbs are filled by the flows.
const (
	msgSelectTarget      = "Select the folder to create the datapack in"
	msgSelectDatapack    = "Select the datapack to add templates to"
	msgInsideDatapack    = "The selected folder is inside the datapack %q. Create a datapack here anyway?"
	msgDuplicateDatapack = "A datapack named %q already exists. Generate into it anyway?"
	msgDatapackName      = "Datapack name"
	msgDescription       = "Datapack description"
	msgNamespace         = "Namespace"
	msgNamespaceHelp     = "Lowercase letters, digits and . / _ - only"
	msgTemplates         = "Files and folders to generate"
	msgProgressTitle     = "Generating datapack"
	msgDownloading       = "Downloading vanilla data (%d of %d)"
	msgCreating          = "Creating files"
	msgComplete          = "Generated %s: %d created, %d skipped"
	msgDownloadTimeout   = "Downloading timed out. Check your connection or raise download_timeout."
	msgNotDatapack       = "The selected folder is not a datapack (pack.mcmeta and data/ are required)."
)

var confirmProceedOrReselect = []Choice{
	{ID: ChoiceYes, Label: "Yes"},
	{ID: ChoiceReselect, Label: "Reselect"},
	{ID: ChoiceNo, Label: "No"},
}

var confirmProceedOrRename = []Choice{
	{ID: ChoiceYes, Label: "Yes"},
	{ID: ChoiceRename, Label: "Rename"},
	{ID: ChoiceNo, Label: "No"},
}
