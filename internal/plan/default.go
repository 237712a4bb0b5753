package plan

import "github.com/visualtopology/skadi-build/internal/subst"

// DefaultName labels the built-in plan in logs and history.
const DefaultName = "built-in"

const latest = "docs/versions/latest/"

// packageDependencies is where the example application pages expect their
// package script tags.
var packageDependencies = subst.Pair{
	Search:  "<!-- include dependencies needed by packages here -->",
	Replace: `<script src="https://cdn.jsdelivr.net/npm/arquero@latest"></script>`,
}

var iconSources = []string{
	"skadi/icons/close_purple.svg",
	"skadi/icons/drag_indicator_purple.svg",
	"skadi/icons/home_purple.svg",
	"skadi/icons/file_upload_purple.svg",
	"skadi/icons/file_download_purple.svg",
	"skadi/icons/help_purple.svg",
	"skadi/icons/palette_purple.svg",
	"skadi/icons/status_error.svg",
	"skadi/icons/status_info.svg",
	"skadi/icons/status_warning.svg",
	"skadi/icons/play.svg",
	"skadi/icons/pause.svg",
	"skadi/icons/delete.svg",
	"skadi/icons/edit_purple.svg",
	"skadi/icons/configuration_purple.svg",
}

// Order matters: later fragments use globals declared by earlier ones.
var skadiScripts = []string{
	"skadi/js/common/icons.js",
	"skadi/js/common/geometry.js",
	"skadi/js/common/palette.js",
	"skadi/js/common/palette_entry.js",
	"skadi/js/common/scrollbar.js",
	"skadi/js/common/svg_dialogue.js",
	"skadi/js/common/palette_dialogue.js",
	"skadi/js/common/iframe_dialogue.js",
	"skadi/js/common/text_menu_dialogue.js",
	"skadi/js/common/tooltip.js",
	"skadi/js/common/x3.js",
	"skadi/js/utils/resource_loader.js",
	"skadi/js/utils/icon_utils.js",
	"skadi/js/services/status_states.js",
	"skadi/js/utils/topology_store.js",
	"skadi/js/core/core.js",
	"skadi/js/core/core_node.js",
	"skadi/js/core/core_link.js",
	"skadi/js/core/core_configuration.js",
	"skadi/js/core/network.js",
	"skadi/js/dialogs/about.js",
	"skadi/js/dialogs/save.js",
	"skadi/js/dialogs/load.js",
	"skadi/js/dialogs/clear.js",
	"skadi/js/dialogs/adjust.js",
	"skadi/js/dialogs/design_metadata.js",
	"skadi/js/dialogs/configuration.js",
	"skadi/js/controls/button.js",
	"skadi/js/controls/text_button.js",
	"skadi/js/graph/designer.js",
	"skadi/js/graph/node.js",
	"skadi/js/graph/link.js",
	"skadi/js/graph/port.js",
	"skadi/js/graph/configuration.js",
	"skadi/js/base/configuration_base.js",
	"skadi/js/base/node_base.js",
	"skadi/js/services/node_service.js",
	"skadi/js/services/wrapper.js",
	"skadi/js/services/configuration_service.js",
	"skadi/js/schema/node_type.js",
	"skadi/js/schema/link_type.js",
	"skadi/js/schema/package_type.js",
	"skadi/js/schema/port_type.js",
	"skadi/js/schema/schema.js",
	"skadi/js/view/application.js",
	"skadi/js/skadi-api.js",
	"skadi/js/skadi-designer-api.js",
	"skadi/js/skadi-view-api.js",
	"skadi/js/start-skadi.js",
	"skadi/js/utils/l10n_utils.js",
}

var skadiStyles = []string{
	"skadi/css/controls.css",
	"skadi/css/designer.css",
	"skadi/css/dialogue.css",
	"skadi/css/link.css",
	"skadi/css/node.css",
	"skadi/css/port.css",
}

var executorScripts = []string{
	"skadi-executor/js/node_execution_states.js",
	"skadi-executor/js/executable_node_service.js",
	"skadi-executor/js/executable_node_wrapper.js",
	"skadi-executor/js/executable_node_base.js",
	"skadi-executor/js/graph_link.js",
	"skadi-executor/js/graph_executor.js",
	"skadi-executor/js/node_execution_failed.js",
}

// Default returns the plan that builds the Skadi distribution from a
// checkout of the Skadi repository.
func Default() *Plan {
	noAnnotate := false
	return &Plan{
		Icons: &IconPass{
			Output:  "skadi/js/common/icons.js",
			Sources: clone(iconSources),
		},
		Artifacts: []Artifact{
			{Output: latest + "skadi.js", Sources: clone(skadiScripts)},
			{Output: latest + "skadi.css", Sources: clone(skadiStyles)},
			{Output: latest + "skadi-application.css", Sources: []string{"skadi/css/application.css"}},
			{Output: latest + "skadi-executor.js", Sources: clone(executorScripts)},
			{
				Output:        "docs/examples/dataviz/app/index.html",
				Annotate:      &noAnnotate,
				Sources:       []string{"skadi/html/index.html"},
				Substitutions: subst.Map{packageDependencies},
			},
			{
				Output:        "docs/examples/dataviz/app/application.html",
				Annotate:      &noAnnotate,
				Sources:       []string{"skadi/html/application.html"},
				Substitutions: subst.Map{packageDependencies},
			},
			{Output: latest + "skadi-ui.js", Sources: []string{"skadi-ui/js/skadi-ui.js"}},
			{Output: latest + "index.html", Annotate: &noAnnotate, Sources: []string{"skadi/html/index.html"}},
		},
		Copies: []Copy{
			{From: "skadi/l10n", To: latest + "l10n"},
		},
	}
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
