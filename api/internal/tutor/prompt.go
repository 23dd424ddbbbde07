package tutor

import (
	"fmt"
	"strings"
)

const classifyPrompt = `Classify the subject of this question into one of these categories: %s.

Math questions involve calculations, equations, mathematical concepts, or numerical problems.
Physics questions involve physical phenomena, forces, energy, motion, or scientific principles.
Chemistry questions involve chemical reactions, elements, compounds, molecular structures, or chemical properties.
Computer Science questions involve programming, algorithms, data structures, software development, or computational concepts.
General questions are anything else, including personal questions, greetings, or non-academic topics.

Question: "%s"

Respond with just one word: %s.
If it's computer science, you can abbreviate it as "cs".`

func buildClassifyPrompt(subjects []Subject, question string) string {
	names := make([]string, 0, len(subjects))
	quoted := make([]string, 0, len(subjects))
	for _, s := range subjects {
		names = append(names, s.Display)
		quoted = append(quoted, fmt.Sprintf("%q", s.Display))
	}
	return fmt.Sprintf(classifyPrompt, joinOr(quoted), question, joinOr(names))
}

// --- math ---

const mathDecisionPrompt = `You are a math tutor assistant that can decide when to use a calculator tool.

Question: %s

Does this question require a direct calculation? If yes, extract just the arithmetic expression to calculate, using only numbers and + - * / ( ) **.

Respond in JSON format like this:
{"needs_calculator": true/false, "expression": "extracted expression if applicable"}`

const mathFinalPrompt = `You are a helpful math tutor. The question was: %s

I've calculated: %s

Please provide a complete, educational answer incorporating this calculation result.`

const mathFallbackPrompt = `You are a helpful math tutor. Answer this question thoroughly: %s`

// --- physics ---

const physicsDecisionPrompt = `You are a physics teaching assistant that can decide when to use calculation tools.

Question: %s

Analyze if this question requires numerical calculations or if it's more conceptual.
If it requires calculations, identify what type of physics problem it is (kinematics, forces, energy, etc.)

Respond in JSON format like this:
{"needs_calculation": true/false, "problem_type": "kinematics/forces/energy/etc", "conceptual_elements": ["list of physics concepts involved"]}`

const physicsFinalPrompt = `You are a physics professor explaining a problem to a student. The question was: %s

I've calculated: %s

Please provide a complete, educational answer that:
1. Explains the relevant physics concepts (%s)
2. Shows the approach to solving this problem step-by-step
3. Incorporates the calculation result
4. Explains what the result means physically`

const physicsFallbackPrompt = `You are a physics professor explaining a concept to a student. The question is: %s

Please provide a comprehensive explanation that:
1. Identifies the core physics principles involved
2. Explains the concepts clearly with everyday analogies where helpful
3. Provides relevant equations if applicable (but don't solve numerically)
4. Connects the concept to real-world applications`

// --- chemistry ---

const chemistryDecisionPrompt = `You are a chemistry teaching assistant that can decide when to use specialized tools.

Question: %s

Analyze if this question is about:
1. Balancing chemical equations
2. Identifying functional groups in organic compounds
3. General chemistry concepts

Respond in JSON format like this:
{"question_type": "equation_balancing/functional_groups/general", "extract": "extracted equation or compound if applicable"}`

const balancePrompt = `Balance this chemical equation: %s

Return only the balanced equation, with coefficients as needed.`

const balanceExplainPrompt = `You are a chemistry professor explaining how to balance equations. The question was: %s

The balanced equation is: %s

Explain step by step how to balance this equation, discussing:
1. The law of conservation of mass
2. How to count atoms on each side
3. The systematic approach to balancing`

const functionalGroupsPrompt = `Identify all functional groups present in this organic compound: %s

Return the result as a comma-separated list of functional groups.`

const functionalGroupsExplainPrompt = `You are a chemistry professor explaining functional groups. The question was: %s

The compound %s contains these functional groups: %s

Explain what each of these functional groups is, their properties, and how they affect the overall molecule's behavior.`

const chemistryFallbackPrompt = `You are a chemistry professor answering a student's question. The question is: %s

Provide a comprehensive explanation that:
1. Addresses the core chemistry concepts involved
2. Uses clear examples and analogies where helpful
3. Includes relevant chemical equations or structures if applicable
4. Connects the concept to real-world applications in chemistry

Be educational, accurate, and engaging in your response.`

// --- computer science ---

const csDecisionPrompt = `You are a computer science teaching assistant that can decide when to use specialized tools.

Question: %s

Analyze if this question is about:
1. Code analysis (debugging, improving code)
2. Algorithm explanation
3. General computer science concepts

Respond in JSON format like this:
{"question_type": "code_analysis/algorithm/general", "extract": "extracted code or algorithm name if applicable"}`

const codeAnalysisPrompt = "Analyze this code for errors and potential improvements:\n\n```\n%s\n```\n\n" + `Provide your analysis in JSON format:
{
    "language": "detected programming language",
    "errors": ["list of errors found"],
    "improvements": ["list of suggested improvements"],
    "complexity": "assessment of time/space complexity if applicable"
}`

const codeReviewPrompt = `You are a computer science professor reviewing code. The question was: %s

I've analyzed the code (detected as %s):

Errors:
%s

Suggested Improvements:
%s

Complexity: %s

Provide a detailed educational explanation that addresses these issues, explains the concepts involved, and teaches good programming practices.`

const algorithmPrompt = `Explain the %s algorithm in detail, covering:

1. The problem it solves
2. How it works step-by-step
3. Its time and space complexity
4. Common use cases
5. Pseudocode implementation

Make your explanation educational and clear.`

const csFallbackPrompt = `You are a computer science professor answering a student's question. The question is: %s

Provide a comprehensive explanation that:
1. Addresses the core computer science concepts involved
2. Uses clear examples and code snippets where helpful
3. Explains the theoretical underpinnings
4. Discusses practical applications

Be educational, accurate, and engaging in your response.`

// --- general ---

const generalPrompt = `You are a friendly educational tutor bot. The user has asked a general question: "%s"

If this is a greeting, personal question, or casual conversation, respond in a friendly way.
If it's not related to education, politely remind them that you're primarily an educational tutor specializing in %s.
Keep your response brief and friendly.`

// joinOr renders ["a","b","c"] as "a, b, or c".
func joinOr(items []string) string {
	return joinList(items, "or")
}

func joinList(items []string, conj string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " " + conj + " " + items[1]
	}
	return strings.Join(items[:len(items)-1], ", ") + ", " + conj + " " + items[len(items)-1]
}

func bulletList(items []string, empty string) string {
	if len(items) == 0 {
		return empty
	}
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = "- " + it
	}
	return strings.Join(lines, "\n")
}
