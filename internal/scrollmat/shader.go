package scrollmat

// DefaultFragmentShader is the base lit material shader with the texture
// coordinates displaced by scrollSpeed * time. The sampler wraps, so the
// offset is not reduced here.
//
// The host defines DEFERRED_PREPASS when compiling the deferred variant; that
// variant writes unlit albedo for a later lighting resolve.
var DefaultFragmentShader = `#version 330 core
in vec2 fragTexCoord;
in vec3 Normal;
in vec3 FragPos;

uniform sampler2D textureSampler;
uniform struct Light {
    vec3 position;
    vec3 color;
    float intensity;
    float ambientStrength;
    int isDirectional;
    vec3 direction;
} light;
uniform vec3 viewPos;
uniform vec3 diffuseColor;
uniform vec3 specularColor;
uniform float shininess;
uniform float alpha;
uniform float time;

layout(std140) uniform ScrollMat {
    vec2 scrollSpeed;
};

out vec4 FragColor;

void main() {
    vec2 uv = fragTexCoord + scrollSpeed * time;
    vec4 texColor = texture(textureSampler, uv);

#ifdef DEFERRED_PREPASS
    FragColor = vec4(diffuseColor, alpha) * texColor;
#else
    vec3 ambient = light.ambientStrength * light.color * diffuseColor;

    vec3 norm = normalize(Normal);
    vec3 lightDir = light.isDirectional == 1
        ? normalize(-light.direction)
        : normalize(light.position - FragPos);
    float diff = max(dot(norm, lightDir), 0.0);
    vec3 diffuse = diff * light.color * diffuseColor;

    vec3 viewDir = normalize(viewPos - FragPos);
    vec3 reflectDir = reflect(-lightDir, norm);
    float spec = pow(max(dot(viewDir, reflectDir), 0.0), shininess);
    vec3 specular = spec * light.color * specularColor;

    vec3 result = (ambient + diffuse + specular) * light.intensity;
    FragColor = vec4(result, alpha) * texColor;
#endif
}
`
