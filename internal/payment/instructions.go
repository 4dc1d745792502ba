package payment

import "strings"

const (
	MethodCashOnDelivery = "Cash on Delivery"
	MethodCreditCard     = "Credit Card"
	MethodMobileBanking  = "Mobile Banking"

	DefaultMethod = MethodCashOnDelivery
)

var InstructionMap = map[string][]string{
	MethodCashOnDelivery: {
		"Your order will be delivered to the shipping address",
		"Prepare {{amount}} in cash when the courier arrives",
		"Pay the courier directly and keep the receipt",
	},
	MethodCreditCard: {
		"Enter your card number, expiry date and CVV",
		"Complete the verification sent by your card issuer",
		"Wait until the payment of {{amount}} is confirmed",
	},
	MethodMobileBanking: {
		"Open your mobile banking app",
		"Transfer {{amount}} quoting order #{{order_id}} as the reference",
		"Keep the transfer receipt until the order is shipped",
	},
}

// NormalizeMethod trims the method and falls back to DefaultMethod when blank.
// Methods outside InstructionMap are rejected.
func NormalizeMethod(method string) (string, error) {
	method = strings.TrimSpace(method)
	if method == "" {
		return DefaultMethod, nil
	}
	if _, ok := InstructionMap[method]; !ok {
		return "", ErrUnsupportedMethod
	}
	return method, nil
}

func GetInstructions(method string) []string {
	if steps, ok := InstructionMap[method]; ok {
		return steps
	}

	return []string{
		"Follow the payment instructions sent with your order confirmation",
	}
}

type InstructionVars map[string]string

func InjectVariables(steps []string, vars InstructionVars) []string {
	result := make([]string, 0, len(steps))

	for _, step := range steps {
		updated := step
		for key, value := range vars {
			updated = strings.ReplaceAll(updated, "{{"+key+"}}", value)
		}
		result = append(result, updated)
	}

	return result
}
