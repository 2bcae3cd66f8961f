package sandbox

import "strings"

// The harness is the documented contract of the sandbox runtime:
//   - imports are gated to the standard library plus an allow-list of
//     data-science packages; blocked imports raise ImportError as text,
//   - matplotlib is forced onto the non-interactive Agg backend before any
//     plotting call, and open figures are flushed to numbered plot_N.png
//     files in the working directory when the user code finishes,
//   - exceptions in user code are captured and printed, never crashing the
//     host process; the script exits non-zero so the run is marked failed.
const harnessPrologue = `import builtins
import sys
import traceback

_STDLIB = set(getattr(sys, "stdlib_module_names", ())) | set(sys.builtin_module_names)
_ALLOWED = {
    "numpy", "pandas", "matplotlib", "mpl_toolkits", "scipy", "sklearn",
    "seaborn", "sympy", "statsmodels", "networkx", "PIL", "requests", "bs4",
    "dateutil", "pytz", "tabulate", "openpyxl", "shapely",
}
_real_import = builtins.__import__


def _gated_import(name, globals=None, locals=None, fromlist=(), level=0):
    top = name.split(".")[0]
    if level > 0 or top.startswith("_") or top in _STDLIB or top in _ALLOWED:
        return _real_import(name, globals, locals, fromlist, level)
    raise ImportError("blocked import: %s" % top)


builtins.__import__ = _gated_import

try:
    import matplotlib
    matplotlib.use("Agg")
    import matplotlib.pyplot as plt
    _PLOTS = True
except Exception:
    _PLOTS = False


def _save_figures():
    if not _PLOTS:
        return []
    saved = []
    for i, num in enumerate(plt.get_fignums()):
        name = "plot_%d.png" % i
        try:
            plt.figure(num).savefig(name, bbox_inches="tight")
            saved.append(name)
        except Exception as e:
            print("Error saving figure %d: %s" % (num, e))
    plt.close("all")
    return saved


def main():
    try:
`

const harnessEpilogue = `    except Exception as e:
        print("Error: %s: %s" % (type(e).__name__, e))
        traceback.print_exc(file=sys.stderr)
        saved = _save_figures()
        if saved:
            print("Plots saved to files: " + ", ".join(saved))
        sys.exit(1)
    saved = _save_figures()
    if saved:
        print("Plots saved to files: " + ", ".join(saved))


if __name__ == "__main__":
    main()
`

const userCodeIndent = "        "

// HarnessScript wraps user source in the sandbox harness. The code runs
// inside a function body so exceptions surface as captured text.
func HarnessScript(source string) string {
	var b strings.Builder
	b.WriteString(harnessPrologue)
	lines := strings.Split(source, "\n")
	if strings.TrimSpace(source) == "" {
		lines = []string{"pass"}
	}
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			b.WriteString("\n")
			continue
		}
		b.WriteString(userCodeIndent)
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(harnessEpilogue)
	return b.String()
}
