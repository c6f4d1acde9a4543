// Package skillswapv1 holds the wire contract of skillswap.v1.SkillSwapService:
// request and response messages, the service descriptor with its typed
// client and server bindings, and the json codec every call uses.
package skillswapv1
