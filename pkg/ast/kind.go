package ast

// NodeKind names a node variant for dispatch and diagnostics.
type NodeKind string

const (
	KindProgram                     NodeKind = "Program"
	KindIdentifier                  NodeKind = "Identifier"
	KindTerminator                  NodeKind = "Terminator"
	KindAttribute                   NodeKind = "Attribute"
	KindAttributeList               NodeKind = "AttributeList"
	KindLiteral                     NodeKind = "Literal"
	KindCompositeString             NodeKind = "CompositeString"
	KindLiteralStringPart           NodeKind = "LiteralStringPart"
	KindExpressionStringPart        NodeKind = "ExpressionStringPart"
	KindBracedExpressionStringPart  NodeKind = "BracedExpressionStringPart"
	KindParenthesized               NodeKind = "Parenthesized"
	KindArray                       NodeKind = "Array"
	KindLegacyArray                 NodeKind = "LegacyArray"
	KindList                        NodeKind = "List"
	KindKeyValueArrayElement        NodeKind = "KeyValueArrayElement"
	KindValueArrayElement           NodeKind = "ValueArrayElement"
	KindVariadicArrayElement        NodeKind = "VariadicArrayElement"
	KindMissingArrayElement         NodeKind = "MissingArrayElement"
	KindArrayAccess                 NodeKind = "ArrayAccess"
	KindArrayAppend                 NodeKind = "ArrayAppend"
	KindDirectVariable              NodeKind = "DirectVariable"
	KindIndirectVariable            NodeKind = "IndirectVariable"
	KindNestedVariable              NodeKind = "NestedVariable"
	KindBracedSelector              NodeKind = "BracedSelector"
	KindMagicConstant               NodeKind = "MagicConstant"
	KindStatic                      NodeKind = "Static"
	KindSelf                        NodeKind = "Self"
	KindParent                      NodeKind = "Parent"
	KindArgument                    NodeKind = "Argument"
	KindArgumentList                NodeKind = "ArgumentList"
	KindFunctionCall                NodeKind = "FunctionCall"
	KindFunctionClosureCreation     NodeKind = "FunctionClosureCreation"
	KindMethodCall                  NodeKind = "MethodCall"
	KindNullSafeMethodCall          NodeKind = "NullSafeMethodCall"
	KindMethodClosureCreation       NodeKind = "MethodClosureCreation"
	KindStaticMethodCall            NodeKind = "StaticMethodCall"
	KindStaticMethodClosureCreation NodeKind = "StaticMethodClosureCreation"
	KindPropertyAccess              NodeKind = "PropertyAccess"
	KindNullSafePropertyAccess      NodeKind = "NullSafePropertyAccess"
	KindStaticPropertyAccess        NodeKind = "StaticPropertyAccess"
	KindClassConstantAccess         NodeKind = "ClassConstantAccess"
	KindInstantiation               NodeKind = "Instantiation"
	KindAnonymousClass              NodeKind = "AnonymousClass"
	KindClosure                     NodeKind = "Closure"
	KindClosureUseVariable          NodeKind = "ClosureUseVariable"
	KindClosureUseClause            NodeKind = "ClosureUseClause"
	KindArrowFunction               NodeKind = "ArrowFunction"
	KindMatch                       NodeKind = "Match"
	KindMatchExpressionArm          NodeKind = "MatchExpressionArm"
	KindMatchDefaultArm             NodeKind = "MatchDefaultArm"
	KindYield                       NodeKind = "Yield"
	KindConstruct                   NodeKind = "Construct"
	KindThrow                       NodeKind = "Throw"
	KindClone                       NodeKind = "Clone"
	KindArithmeticInfixOperation    NodeKind = "ArithmeticInfixOperation"
	KindArithmeticPrefixOperation   NodeKind = "ArithmeticPrefixOperation"
	KindArithmeticPostfixOperation  NodeKind = "ArithmeticPostfixOperation"
	KindAssignmentOperation         NodeKind = "AssignmentOperation"
	KindBitwiseInfixOperation       NodeKind = "BitwiseInfixOperation"
	KindBitwisePrefixOperation      NodeKind = "BitwisePrefixOperation"
	KindComparisonOperation         NodeKind = "ComparisonOperation"
	KindLogicalInfixOperation       NodeKind = "LogicalInfixOperation"
	KindLogicalPrefixOperation      NodeKind = "LogicalPrefixOperation"
	KindConcatOperation             NodeKind = "ConcatOperation"
	KindCoalesceOperation           NodeKind = "CoalesceOperation"
	KindInstanceofOperation         NodeKind = "InstanceofOperation"
	KindCastOperation               NodeKind = "CastOperation"
	KindUnaryPrefixOperation        NodeKind = "UnaryPrefixOperation"
	KindTernaryOperation            NodeKind = "TernaryOperation"
	KindOpeningTag                  NodeKind = "OpeningTag"
	KindClosingTag                  NodeKind = "ClosingTag"
	KindInline                      NodeKind = "Inline"
	KindEchoTag                     NodeKind = "EchoTag"
	KindNamespace                   NodeKind = "Namespace"
	KindUseItem                     NodeKind = "UseItem"
	KindUse                         NodeKind = "Use"
	KindConstantItem                NodeKind = "ConstantItem"
	KindConstant                    NodeKind = "Constant"
	KindFunction                    NodeKind = "Function"
	KindDeclareItem                 NodeKind = "DeclareItem"
	KindDeclare                     NodeKind = "Declare"
	KindGoto                        NodeKind = "Goto"
	KindLabel                       NodeKind = "Label"
	KindBlock                       NodeKind = "Block"
	KindColonBody                   NodeKind = "ColonBody"
	KindTryCatchClause              NodeKind = "TryCatchClause"
	KindTryFinallyClause            NodeKind = "TryFinallyClause"
	KindTry                         NodeKind = "Try"
	KindForeach                     NodeKind = "Foreach"
	KindFor                         NodeKind = "For"
	KindWhile                       NodeKind = "While"
	KindDoWhile                     NodeKind = "DoWhile"
	KindContinue                    NodeKind = "Continue"
	KindBreak                       NodeKind = "Break"
	KindSwitchCase                  NodeKind = "SwitchCase"
	KindSwitch                      NodeKind = "Switch"
	KindIfElseIf                    NodeKind = "IfElseIf"
	KindIfElse                      NodeKind = "IfElse"
	KindIf                          NodeKind = "If"
	KindReturn                      NodeKind = "Return"
	KindExpressionStatement         NodeKind = "ExpressionStatement"
	KindEcho                        NodeKind = "Echo"
	KindGlobal                      NodeKind = "Global"
	KindStaticItem                  NodeKind = "StaticItem"
	KindStaticVariables             NodeKind = "StaticVariables"
	KindHaltCompiler                NodeKind = "HaltCompiler"
	KindUnset                       NodeKind = "Unset"
	KindNoop                        NodeKind = "Noop"
	KindExtends                     NodeKind = "Extends"
	KindImplements                  NodeKind = "Implements"
	KindClassLikeBody               NodeKind = "ClassLikeBody"
	KindClass                       NodeKind = "Class"
	KindInterface                   NodeKind = "Interface"
	KindTrait                       NodeKind = "Trait"
	KindEnumBackingType             NodeKind = "EnumBackingType"
	KindEnum                        NodeKind = "Enum"
	KindTraitUseAdaptation          NodeKind = "TraitUseAdaptation"
	KindTraitUse                    NodeKind = "TraitUse"
	KindClassLikeConstant           NodeKind = "ClassLikeConstant"
	KindPropertyItem                NodeKind = "PropertyItem"
	KindPropertyHook                NodeKind = "PropertyHook"
	KindPropertyHookList            NodeKind = "PropertyHookList"
	KindProperty                    NodeKind = "Property"
	KindEnumCase                    NodeKind = "EnumCase"
	KindMethod                      NodeKind = "Method"
	KindParameter                   NodeKind = "Parameter"
	KindParameterList               NodeKind = "ParameterList"
	KindFunctionLikeReturnTypeHint  NodeKind = "FunctionLikeReturnTypeHint"
	KindKeywordHint                 NodeKind = "KeywordHint"
	KindNullableHint                NodeKind = "NullableHint"
	KindUnionHint                   NodeKind = "UnionHint"
	KindIntersectionHint            NodeKind = "IntersectionHint"
	KindParenthesizedHint           NodeKind = "ParenthesizedHint"
)
