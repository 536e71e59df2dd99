package emitter

import (
	"github.com/specialistvlad/optgen/internal/render"
)

// C++ fragments of the per-module artifacts. They use the same ${name}$
// placeholders as the template files.
var (
	tplHolderMacro = render.MustParse("holder macro",
		`#define ${macro}$`)

	tplHolderField = render.MustParse("holder field",
		`  ${name}$__option_t::type ${name}$${init}$;\
  bool ${name}$__setByUser__ = false;`)

	tplOptionStruct = render.MustParse("option struct",
		`extern struct ${name}$__option_t
{
  typedef ${type}$ type;
  type operator()() const;
  static constexpr const char* name = "${long}$";
} thread_local ${name}$;`)

	tplDeclRef = render.MustParse("ref declaration",
		`template <> options::${name}$__option_t::type& Options::ref(
    options::${name}$__option_t);`)

	tplImplRef = render.MustParse("ref definition",
		`template <> options::${name}$__option_t::type& Options::ref(
    options::${name}$__option_t)
{
  return d_holder->${name}$;
}`)

	tplDeclBracket = render.MustParse("operator[] declaration",
		`template <> const options::${name}$__option_t::type& Options::operator[](
    options::${name}$__option_t) const;`)

	tplImplBracket = render.MustParse("operator[] definition",
		`template <> const options::${name}$__option_t::type& Options::operator[](
    options::${name}$__option_t) const
{
  return d_holder->${name}$;
}`)

	tplDeclWasSet = render.MustParse("wasSetByUser declaration",
		`template <> bool Options::wasSetByUser(options::${name}$__option_t) const;`)

	tplImplWasSet = render.MustParse("wasSetByUser definition",
		`template <> bool Options::wasSetByUser(options::${name}$__option_t) const
{
  return d_holder->${name}$__setByUser__;
}`)

	tplInlineCall = render.MustParse("operator() definition",
		`inline ${name}$__option_t::type ${name}$__option_t::operator()() const
{
  return Options::current()[*this];
}`)

	tplDefinition = render.MustParse("option definition",
		`thread_local struct ${name}$__option_t ${name}$;`)

	tplModeEnum = render.MustParse("mode enum",
		`
enum class ${type}$
{
  ${values}$
};`)

	tplDeclModePrint = render.MustParse("mode printer declaration",
		`
std::ostream& operator<<(std::ostream& os, ${type}$ mode);`)

	tplImplModePrint = render.MustParse("mode printer definition",
		`
std::ostream& operator<<(std::ostream& os, ${type}$ mode)
{
  switch(mode) {${cases}$
    default:
      Unreachable();
  }
  return os;
}
`)

	tplModePrintCase = render.MustParse("mode printer case",
		`
    case ${type}$::${key}$:
      return os << "${type}$::${key}$";`)

	tplDeclModeParse = render.MustParse("mode parser declaration",
		`
${type}$ stringTo${type}$(const std::string& optarg);`)

	tplImplModeParse = render.MustParse("mode parser definition",
		`
${type}$ stringTo${type}$(const std::string& optarg)
{
  ${cases}$
  else if (optarg == "help")
  {
    std::cerr << ${help}$;
    std::exit(1);
  }
  throw OptionException(std::string("unknown option for --${long}$: `+"`"+`") +
                        optarg + "'.  Try --${long}$=help.");
}
`)

	tplModeParseCase = render.MustParse("mode parser case",
		`if (optarg == "${name}$")
  {
    return ${type}$::${key}$;
  }`)
)
