package assembler

import (
	"github.com/specialistvlad/optgen/internal/render"
)

// C++ fragments of the aggregate artifacts.
var (
	tplAssign = render.MustParse("assign specialization",
		`template <> void Options::assign(
    options::${name}$__option_t,
    std::string option,
    std::string optionarg)
{
  auto parsedval = ${handler}$;
${predicates}$  d_holder->${name}$ = parsedval;
  d_holder->${name}$__setByUser__ = true;
  Trace("options") << "user assigned option ${name}$" << std::endl;
}`)

	tplAssignBool = render.MustParse("assignBool specialization",
		`template <> void Options::assignBool(
    options::${name}$__option_t,
    std::string option,
    bool value)
{
${predicates}$  d_holder->${name}$ = value;
  d_holder->${name}$__setByUser__ = true;
  Trace("options") << "user assigned option ${name}$" << std::endl;
}`)

	tplCallAssignBool = render.MustParse("assignBool call",
		`  assignBool(options::${name}$, ${option}$, ${value}$);`)

	tplCallAssign = render.MustParse("assign call",
		`  assign(options::${name}$, ${option}$, optionarg);`)

	tplGetoptLong = render.MustParse("getopt_long entry",
		`{ "${long}$", ${arg}$_argument, nullptr, ${id}$ },`)

	tplGetBool = render.MustParse("get bool",
		`return (*this)[options::${name}$] ? "true" : "false";`)

	tplGetString = render.MustParse("get string",
		`return (*this)[options::${name}$];`)

	tplGetNumeric = render.MustParse("get numeric",
		`return std::to_string((*this)[options::${name}$]);`)

	tplGetStream = render.MustParse("get streamed",
		`std::stringstream ss;
ss << (*this)[options::${name}$];
return ss.str();`)

	tplListBool = render.MustParse("list bool",
		`opts.push_back({"${key}$", d_holder->${name}$ ? "true" : "false"});`)

	tplListNumeric = render.MustParse("list numeric",
		`opts.push_back({"${key}$", std::to_string(d_holder->${name}$)});`)

	tplListStream = render.MustParse("list streamed",
		`{ std::stringstream ss; ss << d_holder->${name}$; opts.push_back({"${key}$", ss.str()}); }`)
)
