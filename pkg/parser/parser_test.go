package parser

import (
	"errors"
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/require"

	"github.com/carthage-software/fennec/pkg/ast"
	"github.com/carthage-software/fennec/pkg/interner"
	"github.com/carthage-software/fennec/pkg/lexer"
	"github.com/carthage-software/fennec/pkg/token"
)

func parse(t *testing.T, source string) *ast.Program {
	t.Helper()
	program, err := Parse(interner.New(), "test.php", source)
	require.NoError(t, err)
	return program
}

func kinds(statements []ast.Statement) []ast.NodeKind {
	var out []ast.NodeKind
	for _, stmt := range statements {
		out = append(out, stmt.Kind())
	}
	return out
}

func TestInlineAndTagStatements(t *testing.T) {
	program := parse(t, "<html><?php echo 1 ?></html>")
	require.Equal(t, []ast.NodeKind{
		ast.KindInline, ast.KindOpeningTag, ast.KindEcho, ast.KindInline,
	}, kinds(program.Statements))
	require.Equal(t, ast.TerminatedByClosingTag, program.Statements[2].(*ast.Echo).Terminator.Form)

	program = parse(t, "<?php echo 1 ?><?php echo 2;")
	require.Equal(t, []ast.NodeKind{ast.KindOpeningTag, ast.KindEcho, ast.KindEcho}, kinds(program.Statements))
	require.Equal(t, ast.TerminatedByTagPair, program.Statements[1].(*ast.Echo).Terminator.Form)

	program = parse(t, "<?= $a, $b ?>")
	tag := program.Statements[0].(*ast.EchoTag)
	require.Len(t, tag.Values, 2)

	program = parse(t, "<?php if ($a) { ?>yes<?php } ?>")
	block := program.Statements[1].(*ast.If).Body.(*ast.Block)
	require.Equal(t, []ast.NodeKind{ast.KindClosingTag, ast.KindInline, ast.KindOpeningTag}, kinds(block.Statements))
}

func TestNamespaces(t *testing.T) {
	program := parse(t, "<?php namespace A; function f() {} namespace B; class C {}")
	require.Equal(t, []ast.NodeKind{ast.KindOpeningTag, ast.KindNamespace, ast.KindNamespace}, kinds(program.Statements))
	require.Equal(t, []ast.NodeKind{ast.KindFunction}, kinds(program.Statements[1].(*ast.Namespace).Statements))
	require.Equal(t, []ast.NodeKind{ast.KindClass}, kinds(program.Statements[2].(*ast.Namespace).Statements))

	program = parse(t, "<?php namespace A\\B { } namespace { echo 1; }")
	first := program.Statements[1].(*ast.Namespace)
	require.NotNil(t, first.Block)
	second := program.Statements[2].(*ast.Namespace)
	require.Nil(t, second.Name)
	require.Len(t, second.Block.Statements, 1)
}

func TestUse(t *testing.T) {
	program := parse(t, "<?php use A\\B, C as D; use function f; use A\\{B, function c, const D as E,};")

	plain := program.Statements[1].(*ast.Use)
	require.False(t, plain.IsGrouped())
	require.Len(t, plain.Items, 2)
	require.NotNil(t, plain.Items[1].Alias)

	fn := program.Statements[2].(*ast.Use)
	require.Equal(t, token.Function, fn.Type.Kind)

	grouped := program.Statements[3].(*ast.Use)
	require.True(t, grouped.IsGrouped())
	require.Len(t, grouped.Items, 3)
	require.Nil(t, grouped.Items[0].Type)
	require.Equal(t, token.Function, grouped.Items[1].Type.Kind)
	require.Equal(t, token.Const, grouped.Items[2].Type.Kind)
	require.NotNil(t, grouped.Items[2].Alias)
}

func TestClass(t *testing.T) {
	program := parse(t, `<?php
#[Entity]
final class A extends B implements C, D {
    use T { x as protected y; T::z insteadof U; }
    public const int X = 1;
    private ?string $s = null, $t;
    public function __construct(private readonly int $id) {}
    abstract function f(): static;
    public string $v { get => $this->v; set { $this->v = $value; } }
    public function list(): array|false { return []; }
}`)

	class := program.Statements[1].(*ast.Class)
	require.Len(t, class.Attributes, 1)
	require.Len(t, class.Modifiers, 1)
	require.Len(t, class.Implements.Types, 2)
	require.Equal(t, []ast.NodeKind{
		ast.KindTraitUse,
		ast.KindClassLikeConstant,
		ast.KindProperty,
		ast.KindMethod,
		ast.KindMethod,
		ast.KindProperty,
		ast.KindMethod,
	}, memberKinds(class.Body.Members), pretty.Sprint(class.Body.Members))

	use := class.Body.Members[0].(*ast.TraitUse)
	require.Len(t, use.Adaptations, 2)
	require.False(t, use.Adaptations[0].IsPrecedence())
	require.Equal(t, token.Protected, use.Adaptations[0].Visibility.Kind)
	require.True(t, use.Adaptations[1].IsPrecedence())

	constant := class.Body.Members[1].(*ast.ClassLikeConstant)
	require.IsType(t, &ast.KeywordHint{}, constant.Hint)

	property := class.Body.Members[2].(*ast.Property)
	require.IsType(t, &ast.NullableHint{}, property.Hint)
	require.Len(t, property.Items, 2)

	constructor := class.Body.Members[3].(*ast.Method)
	require.True(t, constructor.Parameters.Parameters[0].IsPromoted())

	abstract := class.Body.Members[4].(*ast.Method)
	require.True(t, abstract.IsAbstract())

	hooked := class.Body.Members[5].(*ast.Property)
	require.Len(t, hooked.Hooks.Hooks, 2)
	require.Nil(t, hooked.Terminator)

	list := class.Body.Members[6].(*ast.Method)
	require.IsType(t, &ast.UnionHint{}, list.ReturnType.Hint)
}

func memberKinds(members []ast.ClassLikeMember) []ast.NodeKind {
	var out []ast.NodeKind
	for _, m := range members {
		out = append(out, m.Kind())
	}
	return out
}

func TestEnumInterfaceTrait(t *testing.T) {
	program := parse(t, `<?php
enum Suit: string implements HasColor {
    case Hearts = 'H';
    case Spades = 'S';
    const Wild = self::Spades;
    public function color(): string {
        return match ($this) { self::Hearts => 'Red', self::Spades => 'Black' };
    }
}
interface I extends J, K { public function f(): void; }
trait T { public $x; }
`)

	enum := program.Statements[1].(*ast.Enum)
	require.NotNil(t, enum.BackingType)
	require.Equal(t, []ast.NodeKind{
		ast.KindEnumCase, ast.KindEnumCase, ast.KindClassLikeConstant, ast.KindMethod,
	}, memberKinds(enum.Body.Members))

	iface := program.Statements[2].(*ast.Interface)
	require.Len(t, iface.Extends.Types, 2)

	trait := program.Statements[3].(*ast.Trait)
	require.Len(t, trait.Body.Members, 1)
}

func TestControlFlow(t *testing.T) {
	program := parse(t, `<?php
if ($a) { echo 1; } elseif ($b) echo 2; else { echo 3; }
foreach ($items as $k => &$v) {}
for ($i = 0, $j = 1; $i < 10; $i++) {}
for (;;) {}
while ($x) $x--;
do { $x++; } while ($x < 3);
switch ($x) { case 1: case 2; echo 'a'; break; default: echo 'b'; }
try { f(); } catch (A|B $e) { } catch (C) { } finally { }
start: goto start;
`)

	stmt := program.Statements[1].(*ast.If)
	require.Len(t, stmt.ElseIfs, 1)
	require.NotNil(t, stmt.Else)

	foreach := program.Statements[2].(*ast.Foreach)
	require.NotNil(t, foreach.Key)
	require.IsType(t, &ast.UnaryPrefixOperation{}, foreach.Value)

	loop := program.Statements[3].(*ast.For)
	require.Len(t, loop.Initializations, 2)
	require.Len(t, loop.Conditions, 1)
	require.Len(t, loop.Increments, 1)

	empty := program.Statements[4].(*ast.For)
	require.Empty(t, empty.Initializations)

	require.IsType(t, &ast.While{}, program.Statements[5])
	require.IsType(t, &ast.DoWhile{}, program.Statements[6])

	sw := program.Statements[7].(*ast.Switch)
	require.Len(t, sw.Cases, 3)
	require.Empty(t, sw.Cases[0].Statements)
	require.Len(t, sw.Cases[1].Statements, 2)
	require.True(t, sw.Cases[2].IsDefault())

	try := program.Statements[8].(*ast.Try)
	require.Len(t, try.Catches, 2)
	require.IsType(t, &ast.UnionHint{}, try.Catches[0].Hint)
	require.Nil(t, try.Catches[1].Variable)
	require.NotNil(t, try.Finally)

	require.IsType(t, &ast.Label{}, program.Statements[9])
	require.IsType(t, &ast.Goto{}, program.Statements[10])
}

func TestAlternativeSyntax(t *testing.T) {
	program := parse(t, `<?php
if ($a): echo 1; elseif ($b): echo 2; echo 3; else: endif;
foreach ($items as $item): echo $item; endforeach;
for ($i = 0; $i < 3; $i++): endfor ?>
<hr>
<?php while ($x): $x--; endwhile;
switch ($x): case 1: echo 'a'; break; default: echo 'b'; endswitch;
declare(ticks=1): tick(); enddeclare;
`)

	stmt := program.Statements[1].(*ast.If)
	body := stmt.Body.(*ast.ColonBody)
	require.False(t, body.Closes())
	require.Len(t, body.Statements, 1)
	require.Len(t, stmt.ElseIfs, 1)
	require.Len(t, stmt.ElseIfs[0].Body.(*ast.ColonBody).Statements, 2)
	last := stmt.Else.Body.(*ast.ColonBody)
	require.True(t, last.Closes())
	require.Empty(t, last.Statements)
	require.Equal(t, last.Terminator.Span().End, stmt.Span().End)

	foreach := program.Statements[2].(*ast.Foreach)
	require.Len(t, foreach.Body.(*ast.ColonBody).Statements, 1)

	loop := program.Statements[3].(*ast.For)
	require.Equal(t, ast.TerminatedByClosingTag, loop.Body.(*ast.ColonBody).Terminator.Form)

	require.IsType(t, &ast.Inline{}, program.Statements[4])
	require.IsType(t, &ast.OpeningTag{}, program.Statements[5])
	while := program.Statements[6].(*ast.While)
	require.True(t, while.Body.(*ast.ColonBody).Closes())

	sw := program.Statements[7].(*ast.Switch)
	require.True(t, sw.IsAlternative())
	require.Len(t, sw.Cases, 2)
	require.Len(t, sw.Cases[0].Statements, 2)

	d := program.Statements[8].(*ast.Declare)
	require.Nil(t, d.Terminator)
	require.Len(t, d.Body.(*ast.ColonBody).Statements, 1)

	t.Run("templates", func(t *testing.T) {
		program := parse(t, "<?php if ($a): ?>yes<?php else: ?>no<?php endif ?>")
		stmt := program.Statements[1].(*ast.If)
		require.Equal(t, []ast.NodeKind{ast.KindClosingTag, ast.KindInline, ast.KindOpeningTag}, kinds(stmt.Body.(*ast.ColonBody).Statements))
		require.Equal(t, ast.TerminatedByClosingTag, stmt.Else.Body.(*ast.ColonBody).Terminator.Form)
	})

	t.Run("missing end keyword", func(t *testing.T) {
		_, err := Parse(interner.New(), "test.php", "<?php if ($a): echo 1;")
		var parseErr *ParseError
		require.True(t, errors.As(err, &parseErr))
		require.Equal(t, UnexpectedEndOfFile, parseErr.Kind)

		_, err = Parse(interner.New(), "test.php", "<?php while ($a): echo 1; endif;")
		require.True(t, errors.As(err, &parseErr))
		require.Equal(t, token.EndIf, parseErr.Found)
	})
}

func TestMiscStatements(t *testing.T) {
	program := parse(t, `<?php
declare(strict_types=1);
const A = 1, B = 2;
global $a, $$b;
static $c = 1, $d;
static::create();
unset($a, $b[1]);
;
#[Attr(1)] function f(int ...$xs): void {}
#[A] fn() => 1;
return;
__halt_compiler(); raw data`)

	require.Equal(t, []ast.NodeKind{
		ast.KindOpeningTag,
		ast.KindDeclare,
		ast.KindConstant,
		ast.KindGlobal,
		ast.KindStaticVariables,
		ast.KindExpressionStatement,
		ast.KindUnset,
		ast.KindNoop,
		ast.KindFunction,
		ast.KindExpressionStatement,
		ast.KindReturn,
		ast.KindHaltCompiler,
		ast.KindInline,
	}, kinds(program.Statements))

	fn := program.Statements[8].(*ast.Function)
	require.Len(t, fn.Attributes, 1)
	require.NotNil(t, fn.Parameters.Parameters[0].Ellipsis)

	arrow := program.Statements[9].(*ast.ExpressionStatement)
	require.IsType(t, &ast.ArrowFunction{}, arrow.Expression)
}

func TestParseErrors(t *testing.T) {
	in := interner.New()

	_, err := Parse(in, "test.php", "<?php $a = ;")
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	require.Equal(t, UnexpectedToken, parseErr.Kind)
	require.Equal(t, token.Semicolon, parseErr.Found)
	require.Equal(t, "unexpected token `;`", err.Error())

	_, err = Parse(in, "test.php", "<?php foo(")
	require.True(t, errors.As(err, &parseErr))
	require.Equal(t, UnexpectedEndOfFile, parseErr.Kind)

	_, err = Parse(in, "test.php", "<?php try { }")
	require.True(t, errors.As(err, &parseErr))
	require.Equal(t, SyntaxError, parseErr.Kind)

	_, err = Parse(in, "test.php", `<?php "abc`)
	var lexErr *lexer.Error
	require.True(t, errors.As(err, &lexErr))
	_, ok := ErrorSpan(err)
	require.True(t, ok)
}

func TestSourceError(t *testing.T) {
	source := "<?php\n$a = ;\n"
	_, err := Parse(interner.New(), "test.php", source)
	require.Error(t, err)

	err = NewSourceError(err, "test.php", source)
	require.Equal(t, "test.php:2:6: unexpected token `;`", err.Error())

	var sourceErr *SourceError
	require.True(t, errors.As(err, &sourceErr))
	require.Equal(t, 1, sourceErr.Location.Length)
	require.Contains(t, sourceErr.FormatWithHighlighting(), "$a = ;")

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
}
